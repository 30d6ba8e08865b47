// Package service implements scope evaluation against concrete resource
// identifiers, including the group-membership expansion fallback.
package service

import (
	"context"

	"github.com/allisson/hubgate/internal/scopes/domain"
)

// GroupMembershipLookup resolves a user's group memberships for group
// expansion. Implementations report domain-level not-found errors when the
// named user does not exist.
type GroupMembershipLookup interface {
	// GroupsFor returns the names of the groups the named user belongs to.
	GroupsFor(ctx context.Context, userName string) ([]string, error)
}

// Authorizer decides whether a permission set satisfies one required scope for
// a request's resource context.
type Authorizer interface {
	// Authorize returns nil when access is allowed. It returns
	// domain.ErrScopeNotHeld when the scope is absent from the permission set,
	// and domain.ErrResourceNotFound when the scope is held but every filter
	// rule was exhausted without a match, or when a group expansion could not
	// resolve the target user.
	Authorize(ctx context.Context, perms domain.PermissionSet, scopeName string, rc domain.ResourceContext) error
}
