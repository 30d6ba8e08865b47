package app

import (
	"fmt"

	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	"github.com/allisson/hubgate/internal/metrics"
	scopesHTTP "github.com/allisson/hubgate/internal/scopes/http"
	scopesService "github.com/allisson/hubgate/internal/scopes/service"
	scopesUseCase "github.com/allisson/hubgate/internal/scopes/usecase"
)

// AuthorizationMetrics returns the authorization decision metrics recorder.
// Falls back to a no-op recorder when metrics are disabled.
func (c *Container) AuthorizationMetrics() (metrics.AuthorizationMetrics, error) {
	c.authzMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["authzMetrics"] = err
			return
		}
		if provider == nil {
			c.authzMetrics = metrics.NoopAuthorizationMetrics()
			return
		}

		authzMetrics, err := metrics.NewAuthorizationMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["authzMetrics"] = fmt.Errorf("failed to create authorization metrics: %w", err)
			return
		}
		c.authzMetrics = authzMetrics
	})
	if storedErr, exists := c.initErrors["authzMetrics"]; exists {
		return nil, storedErr
	}
	return c.authzMetrics, nil
}

// ScopeResolver returns the effective-scope resolver, backed by the role
// assignments in the database.
func (c *Container) ScopeResolver() (scopesUseCase.ScopeResolver, error) {
	c.scopeResolverInit.Do(func() {
		roleRepo, err := c.RoleRepository()
		if err != nil {
			c.initErrors["scopeResolver"] = fmt.Errorf("failed to get role repository for scope resolver: %w", err)
			return
		}

		authzMetrics, err := c.AuthorizationMetrics()
		if err != nil {
			c.initErrors["scopeResolver"] = err
			return
		}

		source := identityUseCase.NewRoleScopeSource(roleRepo)
		c.scopeResolver = scopesUseCase.NewScopeResolver(source, c.Logger(), authzMetrics)
	})
	if storedErr, exists := c.initErrors["scopeResolver"]; exists {
		return nil, storedErr
	}
	return c.scopeResolver, nil
}

// Authorizer returns the scope authorizer with group expansion backed by the
// user use case.
func (c *Container) Authorizer() (scopesService.Authorizer, error) {
	c.authorizerInit.Do(func() {
		userUseCase, err := c.UserUseCase()
		if err != nil {
			c.initErrors["authorizer"] = fmt.Errorf("failed to get user use case for authorizer: %w", err)
			return
		}
		c.authorizer = scopesService.NewScopeAuthorizer(userUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["authorizer"]; exists {
		return nil, storedErr
	}
	return c.authorizer, nil
}

// Enforcer returns the scope enforcement middleware builder.
func (c *Container) Enforcer() (*scopesHTTP.Enforcer, error) {
	c.enforcerInit.Do(func() {
		resolver, err := c.ScopeResolver()
		if err != nil {
			c.initErrors["enforcer"] = err
			return
		}

		authorizer, err := c.Authorizer()
		if err != nil {
			c.initErrors["enforcer"] = err
			return
		}

		authzMetrics, err := c.AuthorizationMetrics()
		if err != nil {
			c.initErrors["enforcer"] = err
			return
		}

		c.enforcer = scopesHTTP.NewEnforcer(resolver, authorizer, authzMetrics, c.Logger())
	})
	if storedErr, exists := c.initErrors["enforcer"]; exists {
		return nil, storedErr
	}
	return c.enforcer, nil
}
