package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hubgate/internal/httputil"
	"github.com/allisson/hubgate/internal/identity/http/dto"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// GroupHandler handles HTTP requests for group resources.
type GroupHandler struct {
	groupUseCase identityUseCase.GroupUseCase
	logger       *slog.Logger
}

// NewGroupHandler creates a new group handler with required dependencies.
func NewGroupHandler(groupUseCase identityUseCase.GroupUseCase, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		groupUseCase: groupUseCase,
		logger:       logger,
	}
}

// GetGroupHandler returns a single group.
// GET /api/v1/groups/:group_name - requires read:groups, possibly filtered to
// this group.
func (h *GroupHandler) GetGroupHandler(c *gin.Context) {
	group, err := h.groupUseCase.FindGroup(c.Request.Context(), c.Param("group_name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGroupToResponse(group))
}
