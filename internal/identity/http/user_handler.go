package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hubgate/internal/httputil"
	"github.com/allisson/hubgate/internal/identity/http/dto"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// UserHandler handles HTTP requests for user resources.
type UserHandler struct {
	userUseCase identityUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase identityUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// ListUsersHandler returns a paginated list of users.
// GET /api/v1/users - requires the read:users scope (unfiltered).
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// GetUserHandler returns a single user with group memberships.
// GET /api/v1/users/:user_name - requires read:users, possibly filtered to
// this user or one of its groups.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	user, err := h.userUseCase.FindUser(c.Request.Context(), c.Param("user_name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// GetUserServerHandler acknowledges access to a user's named server.
// GET /api/v1/users/:user_name/servers/:server_name - requires users:servers,
// matched against the composite "user/server" identifier.
//
// Servers are spawned and tracked elsewhere; this endpoint exists so callers
// can probe their delegated server access, and it verifies the user exists.
func (h *UserHandler) GetUserServerHandler(c *gin.Context) {
	userName := c.Param("user_name")
	serverName := c.Param("server_name")

	if _, err := h.userUseCase.FindUser(c.Request.Context(), userName); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ServerResponse{
		User:          userName,
		Server:        serverName,
		CompositeName: userName + "/" + serverName,
	})
}
