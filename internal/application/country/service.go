package country

import (
	"context"

	"github.com/erp/addrconfirm/internal/domain/country"
)

// Service serves the country value help shown next to the address form.
type Service struct {
	countries country.Repository
}

// NewService creates a new country Service
func NewService(countries country.Repository) *Service {
	return &Service{countries: countries}
}

// List returns all countries known to the ERP.
func (s *Service) List(ctx context.Context) ([]country.Country, error) {
	return s.countries.ListCountries(ctx)
}
