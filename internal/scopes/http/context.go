// Package http provides the HTTP enforcement boundary for scope-based
// authorization: the per-request principal and scope cache, and the
// RequireScope middleware protecting routes.
package http

import (
	"context"
	"sync"

	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	scopesDomain "github.com/allisson/hubgate/internal/scopes/domain"
	scopesUseCase "github.com/allisson/hubgate/internal/scopes/usecase"
)

// principalKey is a context key type for storing the authenticated principal.
type principalKey struct{}

// scopeCacheKey is a context key type for storing the per-request scope cache.
type scopeCacheKey struct{}

// WithPrincipal stores the authenticated principal in the context. Called by
// the authentication middleware after successful token validation.
func WithPrincipal(ctx context.Context, principal identityDomain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// GetPrincipal retrieves the authenticated principal from the context.
// Returns (principal, true) if one is present, or (zero, false) otherwise.
func GetPrincipal(ctx context.Context) (identityDomain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(identityDomain.Principal)
	return principal, ok
}

// scopeCache lazily resolves and parses the caller's scopes exactly once per
// request. It lives on the request context and is never shared across
// requests, so each concurrent request has its own instance; the sync.Once
// only serializes checks within one request.
type scopeCache struct {
	once  sync.Once
	raw   []string
	perms scopesDomain.PermissionSet
	err   error
}

// load resolves and parses the principal's scopes on first use and returns the
// cached result on subsequent calls within the same request.
func (s *scopeCache) load(
	ctx context.Context,
	resolver scopesUseCase.ScopeResolver,
	principal identityDomain.Principal,
) ([]string, scopesDomain.PermissionSet, error) {
	s.once.Do(func() {
		s.raw, s.err = resolver.Resolve(ctx, principal)
		if s.err != nil {
			return
		}
		s.perms = scopesDomain.ParseScopes(s.raw)
	})
	return s.raw, s.perms, s.err
}

// WithScopeCache installs a fresh scope cache on the context. Called once per
// request by the authentication middleware.
func WithScopeCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, scopeCacheKey{}, &scopeCache{})
}

// getScopeCache retrieves the request's scope cache, or nil if none was
// installed.
func getScopeCache(ctx context.Context) *scopeCache {
	cache, _ := ctx.Value(scopeCacheKey{}).(*scopeCache)
	return cache
}
