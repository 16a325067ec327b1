package businesspartner

import "context"

// Repository is the ERP-backed store for business partners, their
// addresses and their contact assignments. Implementations wrap every
// transport failure in a shared.Error of kind RepositoryError.
type Repository interface {
	// GetPartnerRoot fetches only the root fields of a business partner,
	// without expanding navigation properties.
	GetPartnerRoot(ctx context.Context, key string) (*Record, error)

	// GetPartner fetches a business partner including the name fields
	// used for the email salutation.
	GetPartner(ctx context.Context, key string) (*Record, error)

	// GetFirstAddress returns the partner's first address, or nil when
	// the partner has no address at all.
	GetFirstAddress(ctx context.Context, partnerKey string) (*AddressSnapshot, error)

	// GetAddressByKeys fetches one address by its composite key.
	GetAddressByKeys(ctx context.Context, partnerKey, addressID string) (*AddressSnapshot, error)

	// UpdateAddress writes a changed address back to the ERP.
	UpdateAddress(ctx context.Context, address AddressSnapshot) error

	// UpdateConfirmation persists only the record's confirmation state
	// and address checksum onto the partner's custom fields.
	UpdateConfirmation(ctx context.Context, record *Record) error

	// ListContacts returns all contact assignments of the partner's
	// customer company.
	ListContacts(ctx context.Context, companyKey string) ([]Contact, error)
}
