package erp

import "github.com/erp/addrconfirm/internal/domain/businesspartner"

// OData v2 wraps single entities in {"d": {...}} and entity sets in
// {"d": {"results": [...]}}.
type singleEnvelope[T any] struct {
	D T `json:"d"`
}

type listEnvelope[T any] struct {
	D struct {
		Results []T `json:"results"`
	} `json:"d"`
}

// partnerEntity mirrors A_BusinessPartner with the two custom extension
// fields the confirmation workflow maintains.
type partnerEntity struct {
	BusinessPartner         string `json:"BusinessPartner"`
	Customer                string `json:"Customer"`
	IsNaturalPerson         string `json:"IsNaturalPerson"`
	FirstName               string `json:"FirstName"`
	LastName                string `json:"LastName"`
	BusinessPartnerFullName string `json:"BusinessPartnerFullName"`
	AddressChecksum         string `json:"YY1_AddressChecksum_bus"`
	AddressConfirmState     string `json:"YY1_AddrConfState_bus"`
}

func (e partnerEntity) toRecord() *businesspartner.Record {
	return &businesspartner.Record{
		Key:               e.BusinessPartner,
		Customer:          e.Customer,
		IsNaturalPerson:   e.IsNaturalPerson,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		FullName:          e.BusinessPartnerFullName,
		AddressChecksum:   e.AddressChecksum,
		ConfirmationState: businesspartner.ParseConfirmationState(e.AddressConfirmState),
	}
}

// confirmationPatch carries only the two custom fields so a PATCH never
// touches anything else on the partner.
type confirmationPatch struct {
	AddressChecksum     string `json:"YY1_AddressChecksum_bus"`
	AddressConfirmState string `json:"YY1_AddrConfState_bus"`
}

// addressEntity mirrors A_BusinessPartnerAddress field for field.
type addressEntity struct {
	AddressID                  string `json:"AddressID"`
	BusinessPartner            string `json:"BusinessPartner"`
	AuthorizationGroup         string `json:"AuthorizationGroup"`
	AdditionalStreetPrefixName string `json:"AdditionalStreetPrefixName"`
	AdditionalStreetSuffixName string `json:"AdditionalStreetSuffixName"`
	AddressTimeZone            string `json:"AddressTimeZone"`
	CareOfName                 string `json:"CareOfName"`
	CityCode                   string `json:"CityCode"`
	CityName                   string `json:"CityName"`
	CompanyPostalCode          string `json:"CompanyPostalCode"`
	Country                    string `json:"Country"`
	County                     string `json:"County"`
	DeliveryServiceNumber      string `json:"DeliveryServiceNumber"`
	DeliveryServiceTypeCode    string `json:"DeliveryServiceTypeCode"`
	District                   string `json:"District"`
	FormOfAddress              string `json:"FormOfAddress"`
	FullName                   string `json:"FullName"`
	HomeCityName               string `json:"HomeCityName"`
	HouseNumber                string `json:"HouseNumber"`
	HouseNumberSupplementText  string `json:"HouseNumberSupplementText"`
	Language                   string `json:"Language"`
	POBox                      string `json:"POBox"`
	POBoxDeviatingCityName     string `json:"POBoxDeviatingCityName"`
	POBoxDeviatingCountry      string `json:"POBoxDeviatingCountry"`
	POBoxDeviatingRegion       string `json:"POBoxDeviatingRegion"`
	POBoxIsWithoutNumber       *bool  `json:"POBoxIsWithoutNumber"`
	POBoxLobbyName             string `json:"POBoxLobbyName"`
	POBoxPostalCode            string `json:"POBoxPostalCode"`
	Person                     string `json:"Person"`
	PostalCode                 string `json:"PostalCode"`
	PrfrdCommMediumType        string `json:"PrfrdCommMediumType"`
	Region                     string `json:"Region"`
	StreetName                 string `json:"StreetName"`
	StreetPrefixName           string `json:"StreetPrefixName"`
	StreetSuffixName           string `json:"StreetSuffixName"`
	TaxJurisdiction            string `json:"TaxJurisdiction"`
	TransportZone              string `json:"TransportZone"`
	AddressIDByExternalSystem  string `json:"AddressIDByExternalSystem"`
}

func (e addressEntity) toSnapshot() *businesspartner.AddressSnapshot {
	return &businesspartner.AddressSnapshot{
		AddressID:                  e.AddressID,
		BusinessPartner:            e.BusinessPartner,
		AuthorizationGroup:         e.AuthorizationGroup,
		AdditionalStreetPrefixName: e.AdditionalStreetPrefixName,
		AdditionalStreetSuffixName: e.AdditionalStreetSuffixName,
		AddressTimeZone:            e.AddressTimeZone,
		CareOfName:                 e.CareOfName,
		CityCode:                   e.CityCode,
		CityName:                   e.CityName,
		CompanyPostalCode:          e.CompanyPostalCode,
		Country:                    e.Country,
		County:                     e.County,
		DeliveryServiceNumber:      e.DeliveryServiceNumber,
		DeliveryServiceTypeCode:    e.DeliveryServiceTypeCode,
		District:                   e.District,
		FormOfAddress:              e.FormOfAddress,
		FullName:                   e.FullName,
		HomeCityName:               e.HomeCityName,
		HouseNumber:                e.HouseNumber,
		HouseNumberSupplementText:  e.HouseNumberSupplementText,
		Language:                   e.Language,
		POBox:                      e.POBox,
		POBoxDeviatingCityName:     e.POBoxDeviatingCityName,
		POBoxDeviatingCountry:      e.POBoxDeviatingCountry,
		POBoxDeviatingRegion:       e.POBoxDeviatingRegion,
		POBoxIsWithoutNumber:       e.POBoxIsWithoutNumber,
		POBoxLobbyName:             e.POBoxLobbyName,
		POBoxPostalCode:            e.POBoxPostalCode,
		Person:                     e.Person,
		PostalCode:                 e.PostalCode,
		PrfrdCommMediumType:        e.PrfrdCommMediumType,
		Region:                     e.Region,
		StreetName:                 e.StreetName,
		StreetPrefixName:           e.StreetPrefixName,
		StreetSuffixName:           e.StreetSuffixName,
		TaxJurisdiction:            e.TaxJurisdiction,
		TransportZone:              e.TransportZone,
		AddressIDByExternalSystem:  e.AddressIDByExternalSystem,
	}
}

func fromSnapshot(a businesspartner.AddressSnapshot) addressEntity {
	return addressEntity{
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

// contactEntity mirrors A_BuPaContactToFuncAndDept.
type contactEntity struct {
	BusinessPartnerPerson   string `json:"BusinessPartnerPerson"`
	BusinessPartnerCompany  string `json:"BusinessPartnerCompany"`
	ContactPersonFunction   string `json:"ContactPersonFunction"`
	ContactPersonDepartment string `json:"ContactPersonDepartment"`
	EmailAddress            string `json:"EmailAddress"`
}

func (e contactEntity) toContact() businesspartner.Contact {
	return businesspartner.Contact{
		PersonKey:  e.BusinessPartnerPerson,
		CompanyKey: e.BusinessPartnerCompany,
		Function:   e.ContactPersonFunction,
		Department: e.ContactPersonDepartment,
		Email:      e.EmailAddress,
	}
}

// countryEntity mirrors the country value-help CDS view.
type countryEntity struct {
	Country     string `json:"Country"`
	CountryName string `json:"Country_Text"`
}
