package handler

import (
	"context"
	"net/http"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/country"
	"github.com/gin-gonic/gin"
)

// TokenResolver proves that a token query parameter is genuine and not
// expired before an endpoint does any work.
type TokenResolver interface {
	ResolveToken(sealed string) (businesspartner.ConfirmationToken, error)
}

// CountryService lists the countries shown in the address form.
type CountryService interface {
	List(ctx context.Context) ([]country.Country, error)
}

// CountryHandler serves the country value help. The endpoint carries
// no partner data but still demands a valid token so it cannot be
// scraped anonymously.
type CountryHandler struct {
	BaseHandler
	countries CountryService
	tokens    TokenResolver
}

// NewCountryHandler creates a new CountryHandler
func NewCountryHandler(countries CountryService, tokens TokenResolver) *CountryHandler {
	return &CountryHandler{countries: countries, tokens: tokens}
}

// RegisterRoutes registers the country routes
func (h *CountryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.ListCountries)
}

// ListCountries handles GET /rest/countries?token=
func (h *CountryHandler) ListCountries(c *gin.Context) {
	token, ok := h.token(c)
	if !ok {
		return
	}

	if _, err := h.tokens.ResolveToken(token); err != nil {
		h.Error(c, err)
		return
	}

	countries, err := h.countries.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, countries)
}
