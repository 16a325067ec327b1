package country

import "context"

// Country is one entry of the ERP country value help exposed to the
// address-edit frontend.
type Country struct {
	Code string `json:"country"`
	Name string `json:"countryName"`
}

// Repository lists countries from the ERP-side value-help view.
type Repository interface {
	ListCountries(ctx context.Context) ([]Country, error)
}
