package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hubgate/internal/httputil"
	"github.com/allisson/hubgate/internal/identity/http/dto"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
)

// ServiceHandler handles HTTP requests for service resources.
type ServiceHandler struct {
	serviceUseCase identityUseCase.ServiceUseCase
	logger         *slog.Logger
}

// NewServiceHandler creates a new service handler with required dependencies.
func NewServiceHandler(serviceUseCase identityUseCase.ServiceUseCase, logger *slog.Logger) *ServiceHandler {
	return &ServiceHandler{
		serviceUseCase: serviceUseCase,
		logger:         logger,
	}
}

// GetServiceHandler returns a single service.
// GET /api/v1/services/:service_name - requires read:services, possibly
// filtered to this service.
func (h *ServiceHandler) GetServiceHandler(c *gin.Context) {
	service, err := h.serviceUseCase.FindService(c.Request.Context(), c.Param("service_name"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapServiceToResponse(service))
}
