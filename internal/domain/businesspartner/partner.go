package businesspartner

import (
	"fmt"
	"strings"
)

// ConfirmationState tracks where an address is in the confirmation
// workflow. The string values are what the ERP stores in the
// YY1_AddrConfState_bus extension field.
type ConfirmationState string

const (
	// StateInitial: address changed or created, no confirmation email
	// sent yet (or the last send attempt failed)
	StateInitial ConfirmationState = "Initial"

	// StateOpen: confirmation email sent, customer has not acted on it
	StateOpen ConfirmationState = "Open"

	// StateConfirmed: customer confirmed the address via the REST endpoint
	StateConfirmed ConfirmationState = "Confirmed"
)

// ParseConfirmationState maps a stored value to a ConfirmationState.
// Unknown or empty values fall back to StateInitial so that records
// written before the workflow existed never fail the event handler.
func ParseConfirmationState(value string) ConfirmationState {
	switch ConfirmationState(value) {
	case StateInitial, StateOpen, StateConfirmed:
		return ConfirmationState(value)
	default:
		return StateInitial
	}
}

// Record is the slice of the ERP business partner this service reads and
// annotates. AddressChecksum and ConfirmationState are first-class fields
// here; the ERP client maps them to the partner's custom extension fields
// at the wire boundary.
type Record struct {
	Key             string
	Customer        string // customer id; blank when the partner is not a customer
	IsNaturalPerson string // ERP marker field, non-blank means natural person
	FirstName       string
	LastName        string
	FullName        string

	AddressChecksum   string
	ConfirmationState ConfirmationState
}

// IsCustomer reports whether the partner plays the customer role.
func (r *Record) IsCustomer() bool {
	return strings.TrimSpace(r.Customer) != ""
}

// IsPerson reports whether the partner is flagged as a natural person.
func (r *Record) IsPerson() bool {
	return strings.TrimSpace(r.IsNaturalPerson) != ""
}

// String implements fmt.Stringer for logging
func (r *Record) String() string {
	return fmt.Sprintf("BusinessPartner[key=%s,customer=%s,state=%s]", r.Key, r.Customer, r.ConfirmationState)
}

// Contact is a contact person assignment of a business partner company,
// with the function and department codes used to pick the responsible
// recipient of confirmation emails.
type Contact struct {
	PersonKey  string
	CompanyKey string
	Function   string
	Department string
	Email      string
}

// HasEmail reports whether the contact has a usable email address.
func (c Contact) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}
