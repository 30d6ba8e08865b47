package usecase

import (
	"context"
	"log/slog"
	"slices"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	"github.com/allisson/hubgate/internal/metrics"
	scopesDomain "github.com/allisson/hubgate/internal/scopes/domain"
)

// scopeResolver implements ScopeResolver.
type scopeResolver struct {
	source  ScopeSource
	logger  *slog.Logger
	metrics metrics.AuthorizationMetrics
}

// NewScopeResolver creates a ScopeResolver backed by the given scope source.
func NewScopeResolver(
	source ScopeSource,
	logger *slog.Logger,
	authzMetrics metrics.AuthorizationMetrics,
) ScopeResolver {
	return &scopeResolver{
		source:  source,
		logger:  logger,
		metrics: authzMetrics,
	}
}

// Resolve computes the principal's effective scope grant strings.
//
// For a token principal, the token's own grants are intersected with the
// owner's grants: a token is a bounded delegation, so owner permission changes
// retroactively cap the token without requiring revocation. The "all" sentinel
// is replaced by the owner's grants before the intersection, so a token
// created with "all" tracks exactly what its owner currently holds. Scopes the
// intersection drops are reported as a diagnostic (warning log plus counter),
// never as an error.
//
// The result is sorted for determinism; grant ordering carries no meaning for
// the parser beyond unrestricted-wins, which is order-insensitive.
func (r *scopeResolver) Resolve(
	ctx context.Context,
	principal identityDomain.Principal,
) ([]string, error) {
	if !principal.IsToken() {
		return r.source.ScopesFor(ctx, principal)
	}

	tokenGrants, err := r.source.ScopesFor(ctx, principal)
	if err != nil {
		return nil, err
	}
	ownerGrants, err := r.source.ScopesFor(ctx, *principal.Owner)
	if err != nil {
		return nil, err
	}

	tokenSet := toSet(tokenGrants)
	ownerSet := toSet(ownerGrants)

	// The "all" sentinel means the token inherits everything the owner holds.
	// The sentinel is replaced by the owner's grants rather than intersected
	// itself, so it never shows up as a spuriously discarded scope.
	if _, ok := tokenSet[scopesDomain.ScopeAll]; ok {
		delete(tokenSet, scopesDomain.ScopeAll)
		for grant := range ownerSet {
			tokenSet[grant] = struct{}{}
		}
	}

	effective := make([]string, 0, len(tokenSet))
	var discarded []string
	for grant := range tokenSet {
		if _, ok := ownerSet[grant]; ok {
			effective = append(effective, grant)
		} else {
			discarded = append(discarded, grant)
		}
	}
	slices.Sort(effective)

	// The owner naturally holding more than the token is not reported; only
	// token grants lost to the intersection are.
	if len(discarded) > 0 {
		slices.Sort(discarded)
		r.logger.Warn("token-based access, discarding scopes",
			slog.String("token", principal.Name),
			slog.String("owner", principal.Owner.Name),
			slog.Any("scopes", discarded),
		)
		r.metrics.RecordTokenScopesNarrowed(ctx, len(discarded))
	}

	return effective, nil
}

// toSet converts a grant slice to a membership set.
func toSet(grants []string) map[string]struct{} {
	set := make(map[string]struct{}, len(grants))
	for _, grant := range grants {
		set[grant] = struct{}{}
	}
	return set
}
