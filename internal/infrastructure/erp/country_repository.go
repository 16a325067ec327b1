package erp

import (
	"context"

	"github.com/erp/addrconfirm/internal/domain/country"
)

const countryService = "/sap/opu/odata/sap/YY1_COUNTRY_CDS"

// CountryRepository serves the country value help from a CDS view.
type CountryRepository struct {
	client *Client
}

// NewCountryRepository creates a repository on top of the ERP client.
func NewCountryRepository(client *Client) *CountryRepository {
	return &CountryRepository{client: client}
}

// ListCountries returns all countries the ERP knows.
func (r *CountryRepository) ListCountries(ctx context.Context) ([]country.Country, error) {
	var envelope listEnvelope[countryEntity]
	notFound, err := r.client.get(ctx, countryService+"/YY1_Country", nil, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}

	countries := make([]country.Country, 0, len(envelope.D.Results))
	for _, entity := range envelope.D.Results {
		countries = append(countries, country.Country{Code: entity.Country, Name: entity.CountryName})
	}
	return countries, nil
}
