package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopes(t *testing.T) {
	t.Run("BareGrantIsUnrestricted", func(t *testing.T) {
		parsed := ParseScopes([]string{"users"})

		require.Contains(t, parsed, "users")
		assert.True(t, parsed["users"].Unrestricted)
	})

	t.Run("FilteredGrantAccumulatesValuesInOrder", func(t *testing.T) {
		parsed := ParseScopes([]string{
			"users:servers!server=bar",
			"users:servers!server=baz",
		})

		require.Contains(t, parsed, "users:servers")
		grant := parsed["users:servers"]
		assert.False(t, grant.Unrestricted)
		assert.Equal(t, []string{"bar", "baz"}, grant.Filters[FilterServer])
	})

	t.Run("DuplicateValuesArePreserved", func(t *testing.T) {
		parsed := ParseScopes([]string{"s!k=v", "s!k=v"})

		assert.Equal(t, []string{"v", "v"}, parsed["s"].Filters[FilterKey("k")])
	})

	t.Run("UnrestrictedWinsRegardlessOfOrder", func(t *testing.T) {
		first := ParseScopes([]string{"a!x=1", "a"})
		second := ParseScopes([]string{"a", "a!x=1"})

		assert.True(t, first["a"].Unrestricted)
		assert.True(t, second["a"].Unrestricted)
		assert.Empty(t, first["a"].Filters)
	})

	t.Run("MultipleFilterKeysOnOneScope", func(t *testing.T) {
		parsed := ParseScopes([]string{
			"admin:users!user=alice",
			"admin:users!group=ops",
		})

		grant := parsed["admin:users"]
		assert.Equal(t, []string{"alice"}, grant.Filters[FilterUser])
		assert.Equal(t, []string{"ops"}, grant.Filters[FilterGroup])
	})

	t.Run("EmptyFilterSuffixIsUnrestricted", func(t *testing.T) {
		// "users!" carries no filter expression at all, so it widens.
		parsed := ParseScopes([]string{"users!"})

		assert.True(t, parsed["users"].Unrestricted)
	})

	t.Run("MissingEqualsYieldsEmptyValue", func(t *testing.T) {
		parsed := ParseScopes([]string{"s!user"})

		assert.Equal(t, []string{""}, parsed["s"].Filters[FilterUser])
	})

	t.Run("EmptyScopeNameIsAcceptedVerbatim", func(t *testing.T) {
		// Validation of legal scope names is external; the parser only splits.
		parsed := ParseScopes([]string{"!user=alice"})

		require.Contains(t, parsed, "")
		assert.Equal(t, []string{"alice"}, parsed[""].Filters[FilterUser])
	})

	t.Run("EmptyInputYieldsEmptySet", func(t *testing.T) {
		parsed := ParseScopes(nil)

		assert.Empty(t, parsed)
	})
}

func TestGrantAllows(t *testing.T) {
	t.Run("MatchesListedValue", func(t *testing.T) {
		parsed := ParseScopes([]string{"s!server=alice/lab"})

		assert.True(t, parsed["s"].Allows(FilterServer, "alice/lab"))
		assert.False(t, parsed["s"].Allows(FilterServer, "lab"))
	})

	t.Run("UnrestrictedGrantHasNoFilterValues", func(t *testing.T) {
		parsed := ParseScopes([]string{"s"})

		_, ok := parsed["s"].Values(FilterUser)
		assert.False(t, ok)
	})
}

func TestResourceContext(t *testing.T) {
	t.Run("DropsEmptyValues", func(t *testing.T) {
		rc := NewResourceContext(
			ContextEntry{Key: FilterUser, Value: "alice"},
			ContextEntry{Key: FilterServer, Value: ""},
		)

		require.Len(t, rc, 1)
		value, ok := rc.Value(FilterUser)
		assert.True(t, ok)
		assert.Equal(t, "alice", value)
	})

	t.Run("NormalizeRewritesServerToComposite", func(t *testing.T) {
		rc := NewResourceContext(
			ContextEntry{Key: FilterUser, Value: "alice"},
			ContextEntry{Key: FilterServer, Value: "lab"},
		)

		normalized := rc.Normalize()

		server, ok := normalized.Value(FilterServer)
		require.True(t, ok)
		assert.Equal(t, "alice/lab", server)

		// The original context is untouched.
		server, _ = rc.Value(FilterServer)
		assert.Equal(t, "lab", server)
	})

	t.Run("NormalizeWithoutUserIsNoop", func(t *testing.T) {
		rc := NewResourceContext(ContextEntry{Key: FilterServer, Value: "lab"})

		normalized := rc.Normalize()

		server, _ := normalized.Value(FilterServer)
		assert.Equal(t, "lab", server)
	})
}
