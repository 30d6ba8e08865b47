// Package http provides HTTP middleware and handlers for identity operations:
// bearer token authentication, token issuance and the user/group/service
// resource endpoints the authorization engine protects.
package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	identityService "github.com/allisson/hubgate/internal/identity/service"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	"github.com/allisson/hubgate/internal/httputil"
	scopesHTTP "github.com/allisson/hubgate/internal/scopes/http"

	apperrors "github.com/allisson/hubgate/internal/errors"
)

// AuthenticationMiddleware provides authentication via Bearer token in the
// Authorization header.
//
// The middleware extracts the Bearer token (case-insensitive prefix), hashes
// it with tokenService.HashToken, validates it through
// tokenUseCase.Authenticate and stores the resulting token principal on the
// request context. It also installs the per-request scope cache so downstream
// scope checks resolve the caller's scopes at most once.
//
// Error handling:
//   - Missing Authorization header: 401 Unauthorized
//   - Malformed Authorization header: 401 Unauthorized
//   - Unknown/expired/revoked token: 401 Unauthorized
//   - Other errors: 500 Internal Server Error
func AuthenticationMiddleware(
	tokenUseCase identityUseCase.TokenUseCase,
	tokenService identityService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		tokenHash := tokenService.HashToken(plainToken)

		principal, err := tokenUseCase.Authenticate(c.Request.Context(), tokenHash)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := scopesHTTP.WithPrincipal(c.Request.Context(), principal)
		ctx = scopesHTTP.WithScopeCache(ctx)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("principal_kind", string(principal.Kind)),
			slog.String("principal_name", principal.Name),
		)

		c.Next()
	}
}
