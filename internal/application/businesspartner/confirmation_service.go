package businesspartner

import (
	"context"
	"fmt"

	"github.com/erp/addrconfirm/internal/domain/businesspartner"
	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TokenCodec seals confirmation tokens into opaque strings and opens
// them again. Implemented by the RSA token cipher.
type TokenCodec interface {
	Seal(token businesspartner.ConfirmationToken) (string, error)
	Open(sealed string) (businesspartner.ConfirmationToken, error)
}

// ConfirmationService drives the address confirmation workflow: it
// reacts to business partner change events, decides whether a
// confirmation email is due, and serves the token-gated read and
// confirm operations behind the emailed link.
type ConfirmationService struct {
	partners businesspartner.Repository
	notifier businesspartner.Notifier
	codec    TokenCodec
	cfg      config.ConfirmationConfig
	log      *zap.Logger
}

// NewConfirmationService creates a new ConfirmationService
func NewConfirmationService(
	partners businesspartner.Repository,
	notifier businesspartner.Notifier,
	codec TokenCodec,
	cfg config.ConfirmationConfig,
	log *zap.Logger,
) *ConfirmationService {
	return &ConfirmationService{
		partners: partners,
		notifier: notifier,
		codec:    codec,
		cfg:      cfg,
		log:      log,
	}
}

// ConfirmAddress runs the workflow for one business partner after a
// create or change event. Repository and token failures propagate;
// email delivery failures are absorbed and only leave the record in
// the Initial state so the next change retries the send.
func (s *ConfirmationService) ConfirmAddress(ctx context.Context, partnerKey string) error {
	record, err := s.partners.GetPartnerRoot(ctx, partnerKey)
	if err != nil {
		return err
	}

	log := s.log.With(zap.String("business_partner", record.Key))

	if !record.IsCustomer() || record.IsPerson() {
		log.Debug("partner is not a corporate customer, skipping confirmation")
		return nil
	}

	address, err := s.partners.GetFirstAddress(ctx, record.Key)
	if err != nil {
		return err
	}

	if address == nil {
		// Partner lost its address; drop the bookkeeping so a future
		// address starts the workflow from scratch.
		record.AddressChecksum = ""
		record.ConfirmationState = businesspartner.StateInitial
		return s.partners.UpdateConfirmation(ctx, record)
	}

	checksum := businesspartner.Checksum(*address)

	if businesspartner.Decide(record.AddressChecksum, checksum, record.ConfirmationState) == businesspartner.ActionNone {
		log.Debug("address unchanged or confirmation already pending",
			zap.String("state", string(record.ConfirmationState)))
		return nil
	}

	oldChecksum, oldState := record.AddressChecksum, record.ConfirmationState
	record.AddressChecksum = checksum
	record.ConfirmationState = businesspartner.StateInitial

	if err := s.requestConfirmation(ctx, record, *address); err != nil {
		return err
	}

	if record.AddressChecksum == oldChecksum && record.ConfirmationState == oldState {
		return nil
	}
	return s.partners.UpdateConfirmation(ctx, record)
}

// requestConfirmation sends the confirmation email and moves the record
// to Open on success. A missing recipient or a failed delivery leaves
// the record in Initial without an error.
func (s *ConfirmationService) requestConfirmation(ctx context.Context, record *businesspartner.Record, address businesspartner.AddressSnapshot) error {
	log := s.log.With(zap.String("business_partner", record.Key))

	contact, ok, err := s.resolveContact(ctx, record.Key)
	if err != nil {
		return err
	}
	if !ok {
		log.Warn("no contact person with an email address, leaving confirmation in initial state")
		return nil
	}

	contactPerson, err := s.partners.GetPartner(ctx, contact.PersonKey)
	if err != nil {
		return err
	}

	url, err := s.confirmationURL(record.Key, address.AddressID)
	if err != nil {
		return err
	}

	notification := businesspartner.Notification{
		Partner:         *record,
		Address:         address,
		Contact:         *contactPerson,
		Recipient:       contact.Email,
		ConfirmationURL: url,
	}

	if err := s.notifier.Send(ctx, notification); err != nil {
		log.Warn("confirmation email could not be sent, will retry on next change", zap.Error(err))
		return nil
	}

	log.Info("confirmation email sent", zap.String("recipient", contact.Email))
	record.ConfirmationState = businesspartner.StateOpen
	return nil
}

// resolveContact picks the contact person the confirmation email goes
// to. Preference order: configured function and department with an
// email, then configured function with an email, then any contact with
// an email.
func (s *ConfirmationService) resolveContact(ctx context.Context, companyKey string) (businesspartner.Contact, bool, error) {
	contacts, err := s.partners.ListContacts(ctx, companyKey)
	if err != nil {
		return businesspartner.Contact{}, false, err
	}

	var functionMatch, anyEmail *businesspartner.Contact
	for i := range contacts {
		c := contacts[i]
		if !c.HasEmail() {
			continue
		}
		if c.Function == s.cfg.ContactFunction {
			if c.Department == s.cfg.ContactDepartment {
				return c, true, nil
			}
			if functionMatch == nil {
				functionMatch = &contacts[i]
			}
		}
		if anyEmail == nil {
			anyEmail = &contacts[i]
		}
	}

	if functionMatch != nil {
		return *functionMatch, true, nil
	}
	if anyEmail != nil {
		return *anyEmail, true, nil
	}
	return businesspartner.Contact{}, false, nil
}

func (s *ConfirmationService) confirmationURL(partnerKey, addressID string) (string, error) {
	token := businesspartner.NewConfirmationToken(partnerKey, addressID, s.cfg.TokenValidityDays)
	sealed, err := s.codec.Seal(token)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(s.cfg.URLTemplate, sealed), nil
}

// ResolveToken opens a sealed token and checks its expiry. Both an
// unreadable and an expired token fail with a SecurityError.
func (s *ConfirmationService) ResolveToken(sealed string) (businesspartner.ConfirmationToken, error) {
	token, err := s.codec.Open(sealed)
	if err != nil {
		return token, err
	}
	if !token.Valid() {
		return token, shared.NewSecurityError("confirmation token has expired", nil)
	}
	return token, nil
}

// GetAddress returns the address a sealed token points at.
func (s *ConfirmationService) GetAddress(ctx context.Context, sealed string) (*businesspartner.AddressSnapshot, error) {
	token, err := s.ResolveToken(sealed)
	if err != nil {
		return nil, err
	}
	return s.partners.GetAddressByKeys(ctx, token.BusinessPartner, token.AddressID)
}

// Confirm writes the (possibly corrected) address back to the ERP and
// marks the record confirmed. This is the only operation that ever
// produces the Confirmed state.
func (s *ConfirmationService) Confirm(ctx context.Context, sealed string, address businesspartner.AddressSnapshot) error {
	token, err := s.ResolveToken(sealed)
	if err != nil {
		return err
	}

	// The token, not the request body, decides which address is written.
	address.BusinessPartner = token.BusinessPartner
	address.AddressID = token.AddressID

	if err := s.partners.UpdateAddress(ctx, address); err != nil {
		return err
	}

	record, err := s.partners.GetPartnerRoot(ctx, token.BusinessPartner)
	if err != nil {
		return err
	}
	record.AddressChecksum = businesspartner.Checksum(address)
	record.ConfirmationState = businesspartner.StateConfirmed

	if err := s.partners.UpdateConfirmation(ctx, record); err != nil {
		return err
	}

	s.log.Info("address confirmed",
		zap.String("business_partner", token.BusinessPartner),
		zap.String("address_id", token.AddressID))
	return nil
}
