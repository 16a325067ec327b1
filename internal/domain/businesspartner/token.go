package businesspartner

import "time"

// ConfirmationToken authorizes anonymous access to the address REST
// endpoints for one business-partner address until it expires. It is
// sealed by the cipher and carried as an opaque URL parameter; there is
// no revocation, a token stays replayable until its expiry instant.
type ConfirmationToken struct {
	BusinessPartner  string `json:"businessPartner"`
	AddressID        string `json:"addressID"`
	ExpiryTimeMillis int64  `json:"expiryTimeMillis"`
}

// NewConfirmationToken creates a token valid for validDays days from now.
// Negative validDays produce an already-expired token; callers use that
// for edge cases and tests, so it is deliberately not rejected.
func NewConfirmationToken(businessPartnerKey, addressID string, validDays int) ConfirmationToken {
	expiry := time.Now().Add(time.Duration(validDays) * 24 * time.Hour)
	return ConfirmationToken{
		BusinessPartner:  businessPartnerKey,
		AddressID:        addressID,
		ExpiryTimeMillis: expiry.UnixMilli(),
	}
}

// Valid reports whether the token has not expired yet, evaluated against
// the clock at call time.
func (t ConfirmationToken) Valid() bool {
	return time.Now().UnixMilli() < t.ExpiryTimeMillis
}
