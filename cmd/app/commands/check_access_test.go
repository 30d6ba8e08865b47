package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	scopesService "github.com/allisson/hubgate/internal/scopes/service"
)

// stubResolver returns a fixed scope list per principal name.
type stubResolver struct {
	scopes map[string][]string
}

func (s *stubResolver) Resolve(
	ctx context.Context,
	principal identityDomain.Principal,
) ([]string, error) {
	return s.scopes[principal.Name], nil
}

// stubGroups resolves group memberships from a fixed map.
type stubGroups struct {
	groups map[string][]string
}

func (s *stubGroups) GroupsFor(ctx context.Context, userName string) ([]string, error) {
	groups, ok := s.groups[userName]
	if !ok {
		return nil, identityDomain.ErrUserNotFound
	}
	return groups, nil
}

func TestRunCheckAccess(t *testing.T) {
	ctx := context.Background()
	resolver := &stubResolver{scopes: map[string][]string{
		"alice": {"read:users"},
		"bob":   {"read:users!user=bob"},
		"carol": {"read:users!group=research"},
	}}
	authorizer := scopesService.NewScopeAuthorizer(
		&stubGroups{groups: map[string][]string{
			"alice": nil,
			"bob":   nil,
			"dave":  {"research"},
		}},
		testLogger,
	)

	t.Run("unrestricted-grant-allows", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"user", "alice", "read:users", []string{"user=bob"}, "text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Access allowed")
	})

	t.Run("filtered-grant-denies-other-user", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"user", "bob", "read:users", []string{"user=alice"}, "text",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), "Access denied: no access to resources or resources not found")
	})

	t.Run("group-expansion-allows-member", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"user", "carol", "read:users", []string{"user=dave"}, "json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"allowed": true`)
	})

	t.Run("scope-not-held", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"user", "alice", "admin:users", nil, "json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), `"allowed": false`)
		require.Contains(t, out.String(), `"reason": "scope not held"`)
	})

	t.Run("rejects-unknown-context-key", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"user", "alice", "read:users", []string{"host=example"}, "text",
		)

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid context key")
	})

	t.Run("rejects-unknown-kind", func(t *testing.T) {
		var out bytes.Buffer
		err := RunCheckAccess(
			ctx, resolver, authorizer, testLogger, &out,
			"token", "abc", "read:users", nil, "text",
		)

		require.Error(t, err)
	})
}
