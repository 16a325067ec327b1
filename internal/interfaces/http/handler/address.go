package handler

import (
	"context"
	"net/http"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// ConfirmationService is the slice of the application service the
// address endpoints need.
type ConfirmationService interface {
	GetAddress(ctx context.Context, sealedToken string) (*businesspartner.AddressSnapshot, error)
	Confirm(ctx context.Context, sealedToken string, address businesspartner.AddressSnapshot) error
}

// AddressHandler serves the token-gated address endpoints behind the
// link in the confirmation email.
type AddressHandler struct {
	BaseHandler
	service ConfirmationService
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service ConfirmationService) *AddressHandler {
	return &AddressHandler{service: service}
}

// RegisterRoutes registers the address routes
func (h *AddressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	addresses := rg.Group("/businesspartner")
	{
		addresses.GET("/address", h.GetAddress)
		addresses.PATCH("/address", h.ConfirmAddress)
	}
}

// GetAddress handles GET /rest/businesspartner/address?token=
func (h *AddressHandler) GetAddress(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}

	address, err := h.service.GetAddress(c.Request.Context(), token)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSnapshot(*address))
}

// ConfirmAddress handles PATCH /rest/businesspartner/address?token=
func (h *AddressHandler) ConfirmAddress(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}

	var body dto.AddressDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "request body is not a valid address", err)
		return
	}

	if err := h.service.Confirm(c.Request.Context(), token, body.ToSnapshot()); err != nil {
		h.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
