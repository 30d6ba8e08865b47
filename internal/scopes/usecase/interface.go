// Package usecase implements effective-scope resolution for principals,
// including the owner intersection applied to delegated tokens.
package usecase

import (
	"context"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
)

// ScopeSource is the authoritative source of a principal's declared scope
// grant strings, derived from its assigned roles. How roles produce scope
// strings is not this package's concern.
type ScopeSource interface {
	// ScopesFor returns the raw scope grant strings the principal's roles
	// carry. A principal with no assignments yields an empty slice, not an
	// error.
	ScopesFor(ctx context.Context, principal identityDomain.Principal) ([]string, error)
}

// ScopeResolver computes the effective scope grant strings for a principal.
type ScopeResolver interface {
	// Resolve returns the principal's effective raw scope grants. Plain
	// principals pass through the ScopeSource unchanged; token principals are
	// intersected with their owner's grants so a token can never exceed what
	// its owner independently holds.
	Resolve(ctx context.Context, principal identityDomain.Principal) ([]string, error)
}
