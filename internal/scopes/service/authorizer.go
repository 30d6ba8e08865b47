package service

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/allisson/hubgate/internal/errors"
	"github.com/allisson/hubgate/internal/scopes/domain"
)

// scopeAuthorizer implements Authorizer with group-expansion support.
type scopeAuthorizer struct {
	groups GroupMembershipLookup
	logger *slog.Logger
}

// NewScopeAuthorizer creates an Authorizer that falls back to group-membership
// expansion through the given lookup.
func NewScopeAuthorizer(groups GroupMembershipLookup, logger *slog.Logger) Authorizer {
	return &scopeAuthorizer{groups: groups, logger: logger}
}

// Authorize evaluates one required scope against the resource context.
//
// Decision order:
//  1. Scope absent from the permission set: ErrScopeNotHeld.
//  2. Unrestricted grant: allowed.
//  3. Empty resource context: allowed. The protected operation declared no
//     resource identifiers to check, on the assumption that it filters its own
//     output using the grant's filter data.
//  4. Per context entry, in declaration order: direct filter-value match, then
//     the group-expansion fallback for the user dimension.
//  5. Filters exhausted: ErrResourceNotFound.
//
// The user+server composite normalization is applied here, exactly once, so
// callers pass the context as bound from the request.
func (a *scopeAuthorizer) Authorize(
	ctx context.Context,
	perms domain.PermissionSet,
	scopeName string,
	rc domain.ResourceContext,
) error {
	rc = rc.Normalize()

	grant, ok := perms[scopeName]
	if !ok {
		a.logger.Debug("no scopes present for access",
			slog.String("scope", scopeName))
		return domain.ErrScopeNotHeld
	}

	if grant.Unrestricted {
		a.logger.Debug("unrestricted access",
			slog.String("scope", scopeName))
		return nil
	}

	if len(rc) == 0 {
		a.logger.Debug("restricted access without resource context, internal filtering may apply",
			slog.String("scope", scopeName))
		return nil
	}

	for _, entry := range rc {
		if grant.Allows(entry.Key, entry.Value) {
			a.logger.Debug("restricted access supported by filter",
				slog.String("scope", scopeName),
				slog.String("filter", string(entry.Key)))
			return nil
		}
		if !needsGroupExpansion(entry, grant) {
			continue
		}
		allowed, err := a.userInAllowedGroups(ctx, entry.Value, grant)
		if err != nil {
			return err
		}
		if allowed {
			a.logger.Debug("restricted access supported with group expansion",
				slog.String("scope", scopeName),
				slog.String("user", entry.Value))
			return nil
		}
	}

	a.logger.Debug("access refused, filters do not match request",
		slog.String("scope", scopeName))
	return domain.ErrResourceNotFound
}

// needsGroupExpansion reports whether the user dimension should fall back to
// group-membership matching. It applies only when the grant is restricted by
// group; when the grant also carries a user allow-list, expansion is skipped
// for users already on that list.
func needsGroupExpansion(entry domain.ContextEntry, grant *domain.Grant) bool {
	if entry.Key != domain.FilterUser {
		return false
	}
	if _, hasGroup := grant.Values(domain.FilterGroup); !hasGroup {
		return false
	}
	if _, hasUser := grant.Values(domain.FilterUser); hasUser {
		return !grant.Allows(domain.FilterUser, entry.Value)
	}
	return true
}

// userInAllowedGroups checks whether the named user belongs to any group the
// grant allows. An unresolvable user fails the check itself with
// ErrResourceNotFound: the target identity is unverifiable, and the caller
// must not be able to tell that apart from the resource not existing.
func (a *scopeAuthorizer) userInAllowedGroups(
	ctx context.Context,
	userName string,
	grant *domain.Grant,
) (bool, error) {
	memberships, err := a.groups.GroupsFor(ctx, userName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, domain.ErrResourceNotFound
		}
		return false, err
	}

	allowed, _ := grant.Values(domain.FilterGroup)
	for _, groupName := range memberships {
		for _, allowedName := range allowed {
			if groupName == allowedName {
				return true, nil
			}
		}
	}
	return false, nil
}
