package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/hubgate/internal/httputil"
	identityDomain "github.com/allisson/hubgate/internal/identity/domain"
	"github.com/allisson/hubgate/internal/identity/http/dto"
	identityUseCase "github.com/allisson/hubgate/internal/identity/usecase"
	customValidation "github.com/allisson/hubgate/internal/validation"
)

// TokenHandler handles HTTP requests for token operations.
type TokenHandler struct {
	tokenUseCase identityUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(tokenUseCase identityUseCase.TokenUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// IssueTokenHandler issues a new API token for a user or service.
// POST /api/v1/tokens - requires the tokens scope.
// Returns 201 Created with the plain token; it is never retrievable again.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ownerKind, err := identityDomain.ParsePrincipalKind(req.OwnerKind)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	output, err := h.tokenUseCase.Issue(c.Request.Context(), &identityDomain.IssueTokenInput{
		OwnerKind: ownerKind,
		OwnerName: req.OwnerName,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.IssueTokenResponse{
		ID:    output.ID.String(),
		Token: output.PlainToken,
	})
}
