package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.Nil(t, WrapValidationError(nil))

	err := WrapValidationError(assert.AnError)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("alice"))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate(""))
}

func TestPrincipalName(t *testing.T) {
	assert.NoError(t, PrincipalName.Validate("alice"))
	assert.NoError(t, PrincipalName.Validate("team-a"))
	assert.Error(t, PrincipalName.Validate("a!b"))
	assert.Error(t, PrincipalName.Validate("a=b"))
	assert.Error(t, PrincipalName.Validate("a/b"))
	assert.Error(t, PrincipalName.Validate("a b"))
}

func TestScopeGrant(t *testing.T) {
	assert.NoError(t, ScopeGrant.Validate("users"))
	assert.NoError(t, ScopeGrant.Validate("read:users!user=alice"))
	assert.NoError(t, ScopeGrant.Validate("users!"))
	assert.NoError(t, ScopeGrant.Validate("users!server"))
	assert.Error(t, ScopeGrant.Validate(""))
	assert.Error(t, ScopeGrant.Validate("!user=alice"))
	assert.Error(t, ScopeGrant.Validate("users!=alice"))
}
