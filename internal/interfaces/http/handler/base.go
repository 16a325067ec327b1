package handler

import (
	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/logger"
	"github.com/erp/addrconfirm/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Error writes the detailed error body with the status the error maps to.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	status := dto.StatusForError(err)
	if status >= 500 {
		logger.FromGin(c).Error("request failed", zap.Error(err))
	}
	c.JSON(status, dto.NewDetailedErrorResponse(status, err))
}

// BadRequest writes a 400 with a ValidationError body.
func (h *BaseHandler) BadRequest(c *gin.Context, message string, cause error) {
	h.Error(c, shared.NewValidationError(message, cause))
}

// token pulls the mandatory token query parameter, writing a 400 when
// it is missing.
func (h *BaseHandler) token(c *gin.Context) (string, bool) {
	token := c.Query("token")
	if token == "" {
		h.BadRequest(c, "token query parameter is required", nil)
		return "", false
	}
	return token, true
}
