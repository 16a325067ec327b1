package dto

import "github.com/erp/addrconfirm/internal/domain/businesspartner"

// AddressDTO is the REST shape of a business partner address. Field
// names follow the address manager UI contract.
type AddressDTO struct {
	AddressID                  string `json:"addressID"`
	BusinessPartner            string `json:"businessPartner"`
	AuthorizationGroup         string `json:"authorizationGroup,omitempty"`
	AdditionalStreetPrefixName string `json:"additionalStreetPrefixName,omitempty"`
	AdditionalStreetSuffixName string `json:"additionalStreetSuffixName,omitempty"`
	AddressTimeZone            string `json:"addressTimeZone,omitempty"`
	CareOfName                 string `json:"careOfName,omitempty"`
	CityCode                   string `json:"cityCode,omitempty"`
	CityName                   string `json:"cityName,omitempty"`
	CompanyPostalCode          string `json:"companyPostalCode,omitempty"`
	Country                    string `json:"country,omitempty"`
	County                     string `json:"county,omitempty"`
	DeliveryServiceNumber      string `json:"deliveryServiceNumber,omitempty"`
	DeliveryServiceTypeCode    string `json:"deliveryServiceTypeCode,omitempty"`
	District                   string `json:"district,omitempty"`
	FormOfAddress              string `json:"formOfAddress,omitempty"`
	FullName                   string `json:"fullName,omitempty"`
	HomeCityName               string `json:"homeCityName,omitempty"`
	HouseNumber                string `json:"houseNumber,omitempty"`
	HouseNumberSupplementText  string `json:"houseNumberSupplementText,omitempty"`
	Language                   string `json:"language,omitempty"`
	POBox                      string `json:"pOBox,omitempty"`
	POBoxDeviatingCityName     string `json:"pOBoxDeviatingCityName,omitempty"`
	POBoxDeviatingCountry      string `json:"pOBoxDeviatingCountry,omitempty"`
	POBoxDeviatingRegion       string `json:"pOBoxDeviatingRegion,omitempty"`
	POBoxIsWithoutNumber       *bool  `json:"pOBoxIsWithoutNumber,omitempty"`
	POBoxLobbyName             string `json:"pOBoxLobbyName,omitempty"`
	POBoxPostalCode            string `json:"pOBoxPostalCode,omitempty"`
	Person                     string `json:"person,omitempty"`
	PostalCode                 string `json:"postalCode,omitempty"`
	PrfrdCommMediumType        string `json:"prfrdCommMediumType,omitempty"`
	Region                     string `json:"region,omitempty"`
	StreetName                 string `json:"streetName,omitempty"`
	StreetPrefixName           string `json:"streetPrefixName,omitempty"`
	StreetSuffixName           string `json:"streetSuffixName,omitempty"`
	TaxJurisdiction            string `json:"taxJurisdiction,omitempty"`
	TransportZone              string `json:"transportZone,omitempty"`
	AddressIDByExternalSystem  string `json:"addressIDByExternalSystem,omitempty"`
}

// FromSnapshot converts a domain snapshot into its REST shape.
func FromSnapshot(a businesspartner.AddressSnapshot) AddressDTO {
	return AddressDTO{
		AddressID:                  a.AddressID,
		BusinessPartner:            a.BusinessPartner,
		AuthorizationGroup:         a.AuthorizationGroup,
		AdditionalStreetPrefixName: a.AdditionalStreetPrefixName,
		AdditionalStreetSuffixName: a.AdditionalStreetSuffixName,
		AddressTimeZone:            a.AddressTimeZone,
		CareOfName:                 a.CareOfName,
		CityCode:                   a.CityCode,
		CityName:                   a.CityName,
		CompanyPostalCode:          a.CompanyPostalCode,
		Country:                    a.Country,
		County:                     a.County,
		DeliveryServiceNumber:      a.DeliveryServiceNumber,
		DeliveryServiceTypeCode:    a.DeliveryServiceTypeCode,
		District:                   a.District,
		FormOfAddress:              a.FormOfAddress,
		FullName:                   a.FullName,
		HomeCityName:               a.HomeCityName,
		HouseNumber:                a.HouseNumber,
		HouseNumberSupplementText:  a.HouseNumberSupplementText,
		Language:                   a.Language,
		POBox:                      a.POBox,
		POBoxDeviatingCityName:     a.POBoxDeviatingCityName,
		POBoxDeviatingCountry:      a.POBoxDeviatingCountry,
		POBoxDeviatingRegion:       a.POBoxDeviatingRegion,
		POBoxIsWithoutNumber:       a.POBoxIsWithoutNumber,
		POBoxLobbyName:             a.POBoxLobbyName,
		POBoxPostalCode:            a.POBoxPostalCode,
		Person:                     a.Person,
		PostalCode:                 a.PostalCode,
		PrfrdCommMediumType:        a.PrfrdCommMediumType,
		Region:                     a.Region,
		StreetName:                 a.StreetName,
		StreetPrefixName:           a.StreetPrefixName,
		StreetSuffixName:           a.StreetSuffixName,
		TaxJurisdiction:            a.TaxJurisdiction,
		TransportZone:              a.TransportZone,
		AddressIDByExternalSystem:  a.AddressIDByExternalSystem,
	}
}

// ToSnapshot converts a submitted DTO back into the domain shape.
func (d AddressDTO) ToSnapshot() businesspartner.AddressSnapshot {
	return businesspartner.AddressSnapshot{
		AddressID:                  d.AddressID,
		BusinessPartner:            d.BusinessPartner,
		AuthorizationGroup:         d.AuthorizationGroup,
		AdditionalStreetPrefixName: d.AdditionalStreetPrefixName,
		AdditionalStreetSuffixName: d.AdditionalStreetSuffixName,
		AddressTimeZone:            d.AddressTimeZone,
		CareOfName:                 d.CareOfName,
		CityCode:                   d.CityCode,
		CityName:                   d.CityName,
		CompanyPostalCode:          d.CompanyPostalCode,
		Country:                    d.Country,
		County:                     d.County,
		DeliveryServiceNumber:      d.DeliveryServiceNumber,
		DeliveryServiceTypeCode:    d.DeliveryServiceTypeCode,
		District:                   d.District,
		FormOfAddress:              d.FormOfAddress,
		FullName:                   d.FullName,
		HomeCityName:               d.HomeCityName,
		HouseNumber:                d.HouseNumber,
		HouseNumberSupplementText:  d.HouseNumberSupplementText,
		Language:                   d.Language,
		POBox:                      d.POBox,
		POBoxDeviatingCityName:     d.POBoxDeviatingCityName,
		POBoxDeviatingCountry:      d.POBoxDeviatingCountry,
		POBoxDeviatingRegion:       d.POBoxDeviatingRegion,
		POBoxIsWithoutNumber:       d.POBoxIsWithoutNumber,
		POBoxLobbyName:             d.POBoxLobbyName,
		POBoxPostalCode:            d.POBoxPostalCode,
		Person:                     d.Person,
		PostalCode:                 d.PostalCode,
		PrfrdCommMediumType:        d.PrfrdCommMediumType,
		Region:                     d.Region,
		StreetName:                 d.StreetName,
		StreetPrefixName:           d.StreetPrefixName,
		StreetSuffixName:           d.StreetSuffixName,
		TaxJurisdiction:            d.TaxJurisdiction,
		TransportZone:              d.TransportZone,
		AddressIDByExternalSystem:  d.AddressIDByExternalSystem,
	}
}
