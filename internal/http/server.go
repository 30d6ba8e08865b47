package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/allisson/hubgate/internal/config"
	identityHTTP "github.com/allisson/hubgate/internal/identity/http"
	identityService "github.com/allisson/hubgate/internal/identity/service"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	"github.com/allisson/hubgate/internal/metrics"
	scopesHTTP "github.com/allisson/hubgate/internal/scopes/http"
)

// Handlers groups the resource handlers registered on the API router.
type Handlers struct {
	User    *identityHTTP.UserHandler
	Group   *identityHTTP.GroupHandler
	Service *identityHTTP.ServiceHandler
	Token   *identityHTTP.TokenHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// appCtx is set by Start; the readiness endpoint reports not ready once
	// it is cancelled.
	appCtx context.Context
}

// NewServer creates the API server and registers all routes.
//
// Every /api/v1 route sits behind bearer authentication and a scope
// requirement; the requirement names the scopes of which any one grants
// access, and declares which path parameters identify resources.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
	tokenUseCase identityUseCase.TokenUseCase,
	tokenService identityService.TokenService,
	enforcer *scopesHTTP.Enforcer,
	handlers Handlers,
) *Server {
	gin.SetMode(cfg.GetGinMode())

	router := gin.New()
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	s := &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	s.registerRoutes(cfg, logger, tokenUseCase, tokenService, enforcer, handlers)

	return s
}

// registerRoutes wires the health endpoints and the protected API surface.
func (s *Server) registerRoutes(
	cfg *config.Config,
	logger *slog.Logger,
	tokenUseCase identityUseCase.TokenUseCase,
	tokenService identityService.TokenService,
	enforcer *scopesHTTP.Enforcer,
	handlers Handlers,
) {
	s.router.GET("/health", HealthHandler)
	s.router.GET("/ready", func(c *gin.Context) {
		ctx := s.appCtx
		if ctx == nil {
			ctx = context.Background()
		}
		ReadinessHandler(ctx)(c)
	})

	api := s.router.Group("/api/v1")
	api.Use(identityHTTP.AuthenticationMiddleware(tokenUseCase, tokenService, logger))
	if cfg.RateLimitEnabled {
		api.Use(RateLimitMiddleware(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, logger))
	}

	api.GET("/users",
		enforcer.RequireScope(scopesHTTP.Resources{}, "read:users", "users"),
		handlers.User.ListUsersHandler,
	)
	api.GET("/users/:user_name",
		enforcer.RequireScope(scopesHTTP.Resources{User: true}, "read:users", "users"),
		handlers.User.GetUserHandler,
	)
	api.GET("/users/:user_name/servers/:server_name",
		enforcer.RequireScope(
			scopesHTTP.Resources{User: true, Server: true},
			"read:users:servers", "users:servers",
		),
		handlers.User.GetUserServerHandler,
	)
	api.GET("/groups/:group_name",
		enforcer.RequireScope(scopesHTTP.Resources{Group: true}, "read:groups", "groups"),
		handlers.Group.GetGroupHandler,
	)
	api.GET("/services/:service_name",
		enforcer.RequireScope(scopesHTTP.Resources{Service: true}, "read:services"),
		handlers.Service.GetServiceHandler,
	)
	api.POST("/tokens",
		enforcer.RequireScope(scopesHTTP.Resources{}, "tokens"),
		handlers.Token.IssueTokenHandler,
	)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.appCtx = ctx
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
