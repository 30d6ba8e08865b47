package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/allisson/hubgate/internal/config"
	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	identityHTTP "github.com/allisson/hubgate/internal/identity/http"
	identityService "github.com/allisson/hubgate/internal/identity/service"
	"github.com/allisson/hubgate/internal/metrics"
	scopesHTTP "github.com/allisson/hubgate/internal/scopes/http"
	scopesService "github.com/allisson/hubgate/internal/scopes/service"
	scopesUseCase "github.com/allisson/hubgate/internal/scopes/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	// The rate limiter cleanup goroutine runs for the process lifetime.
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("github.com/allisson/hubgate/internal/http.(*rateLimiterStore).cleanupStale"),
	)
}

var serverTestLogger = slog.New(slog.DiscardHandler)

// stubIdentity backs every identity interface the server needs from a couple
// of in-memory maps.
type stubIdentity struct {
	users  map[string]*identityDomain.User
	scopes map[string][]string // keyed by kind:name
}

func (s *stubIdentity) Issue(
	ctx context.Context,
	input *identityDomain.IssueTokenInput,
) (*identityDomain.IssueTokenOutput, error) {
	if _, ok := s.users[input.OwnerName]; !ok {
		return nil, identityDomain.ErrUserNotFound
	}
	return &identityDomain.IssueTokenOutput{ID: uuid.Must(uuid.NewV7()), PlainToken: "fresh-token"}, nil
}

func (s *stubIdentity) Authenticate(ctx context.Context, tokenHash string) (identityDomain.Principal, error) {
	// The fixture issues one valid token per user named after the user.
	service := identityService.NewTokenService()
	for name := range s.users {
		if service.HashToken("token-for-"+name) == tokenHash {
			return identityDomain.UserPrincipal(name), nil
		}
	}
	return identityDomain.Principal{}, identityDomain.ErrInvalidCredentials
}

func (s *stubIdentity) DeleteExpired(ctx context.Context) (int64, error) { return 0, nil }

func (s *stubIdentity) Create(ctx context.Context, user *identityDomain.User) error { return nil }

func (s *stubIdentity) FindUser(ctx context.Context, name string) (*identityDomain.User, error) {
	user, ok := s.users[name]
	if !ok {
		return nil, identityDomain.ErrUserNotFound
	}
	return user, nil
}

func (s *stubIdentity) List(ctx context.Context, offset, limit int) ([]*identityDomain.User, error) {
	users := []*identityDomain.User{}
	for _, user := range s.users {
		users = append(users, user)
	}
	return users, nil
}

func (s *stubIdentity) GroupsFor(ctx context.Context, userName string) ([]string, error) {
	user, ok := s.users[userName]
	if !ok {
		return nil, identityDomain.ErrUserNotFound
	}
	return user.Groups, nil
}

func (s *stubIdentity) ScopesFor(ctx context.Context, principal identityDomain.Principal) ([]string, error) {
	return s.scopes[string(principal.Kind)+":"+principal.Name], nil
}

func newTestServer(t *testing.T, identity *stubIdentity) *Server {
	t.Helper()

	cfg := &config.Config{
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		LogLevel:         "error",
		RateLimitEnabled: false,
	}

	authzMetrics := metrics.NoopAuthorizationMetrics()
	resolver := scopesUseCase.NewScopeResolver(identity, serverTestLogger, authzMetrics)
	authorizer := scopesService.NewScopeAuthorizer(identity, serverTestLogger)
	enforcer := scopesHTTP.NewEnforcer(resolver, authorizer, authzMetrics, serverTestLogger)

	tokenService := identityService.NewTokenService()

	return NewServer(cfg, serverTestLogger, nil, identity, tokenService, enforcer, Handlers{
		User:    identityHTTP.NewUserHandler(identity, serverTestLogger),
		Group:   identityHTTP.NewGroupHandler(nil, serverTestLogger),
		Service: identityHTTP.NewServiceHandler(nil, serverTestLogger),
		Token:   identityHTTP.NewTokenHandler(identity, serverTestLogger),
	})
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		users: map[string]*identityDomain.User{
			"alice": {ID: uuid.Must(uuid.NewV7()), Name: "alice", CreatedAt: time.Now().UTC()},
			"bob":   {ID: uuid.Must(uuid.NewV7()), Name: "bob", CreatedAt: time.Now().UTC()},
		},
		scopes: map[string][]string{
			"user:alice": {"read:users"},
			"user:bob":   {"read:users!user=bob"},
		},
	}
}

func TestServer_HealthEndpoints(t *testing.T) {
	server := newTestServer(t, newStubIdentity())

	for _, path := range []string{"/health", "/ready"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		server.GetHandler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServer_RequiresAuthentication(t *testing.T) {
	server := newTestServer(t, newStubIdentity())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_ScopeEnforcement(t *testing.T) {
	server := newTestServer(t, newStubIdentity())

	t.Run("UnrestrictedScopeListsUsers", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer token-for-alice")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("FilteredScopeStillLists", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer token-for-bob")
		server.GetHandler().ServeHTTP(w, req)

		// Listing has no resource identifiers, so a user-filtered grant
		// allows it: the empty context has nothing the filter can reject.
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("FilteredScopeReadsOwnRecord", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/bob", nil)
		req.Header.Set("Authorization", "Bearer token-for-bob")
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("FilteredScopeDeniedOtherRecord", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/alice", nil)
		req.Header.Set("Authorization", "Bearer token-for-bob")
		server.GetHandler().ServeHTTP(w, req)

		// Both required scopes fail: read:users with an exhausted filter
		// (resource not found) and users as not held, so the single
		// per-resource failure surfaces as 404.
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
