package businesspartner

import (
	"fmt"
	"strings"
)

// AddressSnapshot is a flat copy of every business-partner address field
// that a customer confirms. It carries no identity beyond its values: the
// workflow only canonicalizes it for checksumming and serializes it for
// the confirmation email and the REST DTO.
//
// POBoxIsWithoutNumber is a pointer because the ERP distinguishes "not
// maintained" from an explicit false, and the checksum must too.
type AddressSnapshot struct {
	AddressID                  string
	BusinessPartner            string
	AuthorizationGroup         string
	AdditionalStreetPrefixName string
	AdditionalStreetSuffixName string
	AddressTimeZone            string
	CareOfName                 string
	CityCode                   string
	CityName                   string
	CompanyPostalCode          string
	Country                    string
	County                     string
	DeliveryServiceNumber      string
	DeliveryServiceTypeCode    string
	District                   string
	FormOfAddress              string
	FullName                   string
	HomeCityName               string
	HouseNumber                string
	HouseNumberSupplementText  string
	Language                   string
	POBox                      string
	POBoxDeviatingCityName     string
	POBoxDeviatingCountry      string
	POBoxDeviatingRegion       string
	POBoxIsWithoutNumber       *bool
	POBoxLobbyName             string
	POBoxPostalCode            string
	Person                     string
	PostalCode                 string
	PrfrdCommMediumType        string
	Region                     string
	StreetName                 string
	StreetPrefixName           string
	StreetSuffixName           string
	TaxJurisdiction            string
	TransportZone              string
	AddressIDByExternalSystem  string
}

// Canonical renders the snapshot as a single string with a fixed field
// order. Two snapshots produce the same canonical form iff all confirmable
// fields are equal, which makes it a safe checksum input.
func (a AddressSnapshot) Canonical() string {
	var b strings.Builder
	b.WriteString("AddressSnapshot[")

	fields := []struct {
		name  string
		value string
	}{
		{"addressID", a.AddressID},
		{"businessPartner", a.BusinessPartner},
		{"authorizationGroup", a.AuthorizationGroup},
		{"additionalStreetPrefixName", a.AdditionalStreetPrefixName},
		{"additionalStreetSuffixName", a.AdditionalStreetSuffixName},
		{"addressTimeZone", a.AddressTimeZone},
		{"careOfName", a.CareOfName},
		{"cityCode", a.CityCode},
		{"cityName", a.CityName},
		{"companyPostalCode", a.CompanyPostalCode},
		{"country", a.Country},
		{"county", a.County},
		{"deliveryServiceNumber", a.DeliveryServiceNumber},
		{"deliveryServiceTypeCode", a.DeliveryServiceTypeCode},
		{"district", a.District},
		{"formOfAddress", a.FormOfAddress},
		{"fullName", a.FullName},
		{"homeCityName", a.HomeCityName},
		{"houseNumber", a.HouseNumber},
		{"houseNumberSupplementText", a.HouseNumberSupplementText},
		{"language", a.Language},
		{"pOBox", a.POBox},
		{"pOBoxDeviatingCityName", a.POBoxDeviatingCityName},
		{"pOBoxDeviatingCountry", a.POBoxDeviatingCountry},
		{"pOBoxDeviatingRegion", a.POBoxDeviatingRegion},
		{"pOBoxIsWithoutNumber", formatOptionalBool(a.POBoxIsWithoutNumber)},
		{"pOBoxLobbyName", a.POBoxLobbyName},
		{"pOBoxPostalCode", a.POBoxPostalCode},
		{"person", a.Person},
		{"postalCode", a.PostalCode},
		{"prfrdCommMediumType", a.PrfrdCommMediumType},
		{"region", a.Region},
		{"streetName", a.StreetName},
		{"streetPrefixName", a.StreetPrefixName},
		{"streetSuffixName", a.StreetSuffixName},
		{"taxJurisdiction", a.TaxJurisdiction},
		{"transportZone", a.TransportZone},
		{"addressIDByExternalSystem", a.AddressIDByExternalSystem},
	}

	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(f.value)
	}
	b.WriteByte(']')

	return b.String()
}

// String implements fmt.Stringer for logging
func (a AddressSnapshot) String() string {
	return fmt.Sprintf("AddressSnapshot[businessPartner=%s,addressID=%s,country=%s,cityName=%s]",
		a.BusinessPartner, a.AddressID, a.Country, a.CityName)
}

func formatOptionalBool(v *bool) string {
	if v == nil {
		return "<nil>"
	}
	if *v {
		return "true"
	}
	return "false"
}
