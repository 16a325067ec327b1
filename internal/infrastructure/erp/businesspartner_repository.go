package erp

import (
	"context"
	"fmt"
	"net/url"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
)

const businessPartnerService = "/sap/opu/odata/sap/API_BUSINESS_PARTNER"

// rootSelect keeps GetPartnerRoot from dragging in navigation
// properties; the workflow only needs the flags and the custom fields.
const rootSelect = "BusinessPartner,Customer,IsNaturalPerson,YY1_AddressChecksum_bus,YY1_AddrConfState_bus"

// BusinessPartnerRepository is the OData-backed implementation of
// businesspartner.Repository.
type BusinessPartnerRepository struct {
	client *Client
}

// NewBusinessPartnerRepository creates a repository on top of the ERP client.
func NewBusinessPartnerRepository(client *Client) *BusinessPartnerRepository {
	return &BusinessPartnerRepository{client: client}
}

func partnerPath(key string) string {
	return fmt.Sprintf("%s/A_BusinessPartner('%s')", businessPartnerService, url.PathEscape(key))
}

func addressPath(partnerKey, addressID string) string {
	return fmt.Sprintf("%s/A_BusinessPartnerAddress(BusinessPartner='%s',AddressID='%s')",
		businessPartnerService, url.PathEscape(partnerKey), url.PathEscape(addressID))
}

// GetPartnerRoot fetches only the root fields of a business partner.
func (r *BusinessPartnerRepository) GetPartnerRoot(ctx context.Context, key string) (*businesspartner.Record, error) {
	var envelope singleEnvelope[partnerEntity]
	notFound, err := r.client.get(ctx, partnerPath(key), url.Values{"$select": {rootSelect}}, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, shared.NewRepositoryError(fmt.Sprintf("business partner %s does not exist", key), nil)
	}
	return envelope.D.toRecord(), nil
}

// GetPartner fetches a business partner including the name fields.
func (r *BusinessPartnerRepository) GetPartner(ctx context.Context, key string) (*businesspartner.Record, error) {
	var envelope singleEnvelope[partnerEntity]
	notFound, err := r.client.get(ctx, partnerPath(key), nil, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, shared.NewRepositoryError(fmt.Sprintf("business partner %s does not exist", key), nil)
	}
	return envelope.D.toRecord(), nil
}

// GetFirstAddress returns the partner's first address, nil when the
// partner has none.
func (r *BusinessPartnerRepository) GetFirstAddress(ctx context.Context, partnerKey string) (*businesspartner.AddressSnapshot, error) {
	path := partnerPath(partnerKey) + "/to_BusinessPartnerAddress"

	var envelope listEnvelope[addressEntity]
	notFound, err := r.client.get(ctx, path, url.Values{"$top": {"1"}}, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound || len(envelope.D.Results) == 0 {
		return nil, nil
	}
	return envelope.D.Results[0].toSnapshot(), nil
}

// GetAddressByKeys fetches one address by its composite key.
func (r *BusinessPartnerRepository) GetAddressByKeys(ctx context.Context, partnerKey, addressID string) (*businesspartner.AddressSnapshot, error) {
	var envelope singleEnvelope[addressEntity]
	notFound, err := r.client.get(ctx, addressPath(partnerKey, addressID), nil, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, shared.NewRepositoryError(
			fmt.Sprintf("address %s of business partner %s does not exist", addressID, partnerKey), nil)
	}
	return envelope.D.toSnapshot(), nil
}

// UpdateAddress writes a changed address back to the ERP.
func (r *BusinessPartnerRepository) UpdateAddress(ctx context.Context, address businesspartner.AddressSnapshot) error {
	return r.client.patch(ctx, addressPath(address.BusinessPartner, address.AddressID), fromSnapshot(address))
}

// UpdateConfirmation persists the checksum and confirmation state onto
// the partner's custom fields, and nothing else.
func (r *BusinessPartnerRepository) UpdateConfirmation(ctx context.Context, record *businesspartner.Record) error {
	return r.client.patch(ctx, partnerPath(record.Key), confirmationPatch{
		AddressChecksum:     record.AddressChecksum,
		AddressConfirmState: string(record.ConfirmationState),
	})
}

// ListContacts returns all contact assignments of the company.
func (r *BusinessPartnerRepository) ListContacts(ctx context.Context, companyKey string) ([]businesspartner.Contact, error) {
	path := businessPartnerService + "/A_BuPaContactToFuncAndDept"
	query := url.Values{"$filter": {fmt.Sprintf("BusinessPartnerCompany eq '%s'", companyKey)}}

	var envelope listEnvelope[contactEntity]
	notFound, err := r.client.get(ctx, path, query, &envelope)
	if err != nil {
		return nil, err
	}
	if notFound {
		return nil, nil
	}

	contacts := make([]businesspartner.Contact, 0, len(envelope.D.Results))
	for _, entity := range envelope.D.Results {
		contacts = append(contacts, entity.toContact())
	}
	return contacts, nil
}
