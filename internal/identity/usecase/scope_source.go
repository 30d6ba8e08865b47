package usecase

import (
	"context"

	"github.com/allisson/hubgate/internal/identity/domain"
)

// roleScopeSource adapts the role repository to the authorization engine's
// ScopeSource: a principal's declared scopes are the flattened grants of its
// assigned roles. Token principals have their own role assignments, keyed by
// the token's ID; their owner's grants are consulted separately by the
// resolver.
type roleScopeSource struct {
	roleRepo RoleRepository
}

// NewRoleScopeSource creates the role-backed scope accessor.
func NewRoleScopeSource(roleRepo RoleRepository) *roleScopeSource {
	return &roleScopeSource{roleRepo: roleRepo}
}

// ScopesFor returns the raw scope grant strings the principal's roles carry.
func (r *roleScopeSource) ScopesFor(ctx context.Context, principal domain.Principal) ([]string, error) {
	return r.roleRepo.ScopesForPrincipal(ctx, principal.Kind, principal.Name)
}
