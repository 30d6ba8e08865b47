package http

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/hubgate/internal/errors"
	"github.com/allisson/hubgate/internal/httputil"
	"github.com/allisson/hubgate/internal/metrics"
	scopesDomain "github.com/allisson/hubgate/internal/scopes/domain"
	scopesService "github.com/allisson/hubgate/internal/scopes/service"
	scopesUseCase "github.com/allisson/hubgate/internal/scopes/usecase"
)

// Resources statically declares which resource identifiers a protected route
// exposes through its path parameters. It is built at route registration time;
// nothing is reflected from the handler at call time.
type Resources struct {
	User    bool // binds the :user_name path parameter
	Server  bool // binds the :server_name path parameter
	Group   bool // binds the :group_name path parameter
	Service bool // binds the :service_name path parameter
}

// resourceParams maps each filter key to its route parameter name, in the
// order identifiers are bound into the resource context.
var resourceParams = []struct {
	key   scopesDomain.FilterKey
	param string
}{
	{scopesDomain.FilterUser, "user_name"},
	{scopesDomain.FilterServer, "server_name"},
	{scopesDomain.FilterGroup, "group_name"},
	{scopesDomain.FilterService, "service_name"},
}

// context binds the declared path parameters into a resource context. The
// user/server composite normalization happens later, inside the authorizer.
func (r Resources) context(c *gin.Context) scopesDomain.ResourceContext {
	declared := map[scopesDomain.FilterKey]bool{
		scopesDomain.FilterUser:    r.User,
		scopesDomain.FilterServer:  r.Server,
		scopesDomain.FilterGroup:   r.Group,
		scopesDomain.FilterService: r.Service,
	}
	entries := make([]scopesDomain.ContextEntry, 0, len(resourceParams))
	for _, rp := range resourceParams {
		if !declared[rp.key] {
			continue
		}
		entries = append(entries, scopesDomain.ContextEntry{
			Key:   rp.key,
			Value: c.Param(rp.param),
		})
	}
	return scopesDomain.NewResourceContext(entries...)
}

// Enforcer builds scope enforcement middleware for protected routes. It is
// constructed once and shared by every route registration.
type Enforcer struct {
	resolver   scopesUseCase.ScopeResolver
	authorizer scopesService.Authorizer
	metrics    metrics.AuthorizationMetrics
	logger     *slog.Logger
}

// NewEnforcer creates an Enforcer.
func NewEnforcer(
	resolver scopesUseCase.ScopeResolver,
	authorizer scopesService.Authorizer,
	authzMetrics metrics.AuthorizationMetrics,
	logger *slog.Logger,
) *Enforcer {
	return &Enforcer{
		resolver:   resolver,
		authorizer: authorizer,
		metrics:    authzMetrics,
		logger:     logger,
	}
}

// RequireScope returns middleware allowing the request when the caller's
// effective scopes satisfy any one of the required scope names for the
// resource identifiers the route declares.
//
// MUST be used after the authentication middleware: it needs the authenticated
// principal on the request context. The caller's scopes are resolved and
// parsed at most once per request and cached for subsequent checks in the same
// request.
//
// Outcomes:
//   - Any required scope allows: the request proceeds.
//   - Exactly one required scope fails with resource-not-found and none allow:
//     404, taking precedence over the aggregate denial (the check established
//     that the target resource is unverifiable for this caller).
//   - Otherwise: 403 naming the scopes that would have sufficed.
//
// An empty required-scope list is a programming error and panics at route
// registration time.
func (e *Enforcer) RequireScope(resources Resources, anyOf ...string) gin.HandlerFunc {
	if len(anyOf) == 0 {
		panic("scopes: RequireScope requires at least one scope name")
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		principal, ok := GetPrincipal(ctx)
		if !ok {
			e.logger.Debug("scope enforcement failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, e.logger)
			c.Abort()
			return
		}

		// The authentication middleware installs the cache; tolerate direct
		// use without it by installing one here.
		cache := getScopeCache(ctx)
		if cache == nil {
			ctx = WithScopeCache(ctx)
			c.Request = c.Request.WithContext(ctx)
			cache = getScopeCache(ctx)
		}

		rawScopes, perms, err := cache.load(ctx, e.resolver, principal)
		if err != nil {
			e.metrics.RecordDecision(ctx, c.FullPath(), metrics.DecisionError)
			httputil.HandleErrorGin(c, err, e.logger)
			c.Abort()
			return
		}

		rc := resources.context(c)

		var notFound error
		notFoundCount := 0
		for _, scopeName := range anyOf {
			checkErr := e.authorizer.Authorize(ctx, perms, scopeName, rc)
			if checkErr == nil {
				e.metrics.RecordDecision(ctx, c.FullPath(), metrics.DecisionAllowed)
				c.Next()
				return
			}
			switch {
			case errors.Is(checkErr, scopesDomain.ErrResourceNotFound):
				notFound = checkErr
				notFoundCount++
			case errors.Is(checkErr, scopesDomain.ErrScopeNotHeld):
				// Plain per-scope denial; aggregated below.
			default:
				e.metrics.RecordDecision(ctx, c.FullPath(), metrics.DecisionError)
				httputil.HandleErrorGin(c, checkErr, e.logger)
				c.Abort()
				return
			}
		}

		e.logger.Warn("not authorizing access",
			slog.String("endpoint", c.FullPath()),
			slog.Any("required_any_of", anyOf),
			slog.Any("held_scopes", rawScopes),
		)

		// A single per-resource failure means the one check that could have
		// identified the target determined it is unverifiable; that outcome
		// takes precedence over the aggregate denial.
		if notFoundCount == 1 {
			e.metrics.RecordDecision(ctx, c.FullPath(), metrics.DecisionResourceNotFound)
			httputil.HandleErrorGin(c, notFound, e.logger)
			c.Abort()
			return
		}

		e.metrics.RecordDecision(ctx, c.FullPath(), metrics.DecisionDenied)
		httputil.HandleErrorGin(c, &scopesDomain.DeniedError{RequiredScopes: anyOf}, e.logger)
		c.Abort()
	}
}
