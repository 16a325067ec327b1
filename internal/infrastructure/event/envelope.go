package event

import (
	"encoding/json"
	"fmt"

	"github.com/erp/addrconfirm/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

// Event types emitted by the ERP for business partners. Created and
// Changed carry the same payload and trigger the same workflow.
const (
	TypePartnerCreated = "BO.BusinessPartner.Created"
	TypePartnerChanged = "BO.BusinessPartner.Changed"
)

// envelope is the outer message every ERP event arrives in. The
// eventType discriminator selects the payload schema.
type envelope struct {
	EventType   string          `json:"eventType" validate:"required"`
	EventID     string          `json:"eventID"`
	ContentType string          `json:"contentType" validate:"required,eq=application/json"`
	Data        json.RawMessage `json:"data" validate:"required"`
}

// partnerPayload is the data section of a business partner event.
// The ERP always addresses exactly one partner per event.
type partnerPayload struct {
	Key []partnerKey `json:"KEY" validate:"required,len=1,dive"`
}

type partnerKey struct {
	BusinessPartner string `json:"BUSINESSPARTNER" validate:"required"`
}

// BusinessPartnerEvent is a decoded create or change notification.
type BusinessPartnerEvent struct {
	Type               string
	ID                 string
	BusinessPartnerKey string
}

// UnknownEvent is anything with a discriminator this service does not
// handle. Consumers drop it with a log line instead of failing.
type UnknownEvent struct {
	Type string
	ID   string
}

var validate = validator.New()

// Decode parses a raw message into a BusinessPartnerEvent or an
// UnknownEvent. Malformed envelopes and payloads fail with a
// ValidationError.
func Decode(raw []byte) (any, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, shared.NewValidationError("parsing event envelope", err)
	}
	if err := validate.Struct(env); err != nil {
		return nil, shared.NewValidationError("invalid event envelope", err)
	}

	switch env.EventType {
	case TypePartnerCreated, TypePartnerChanged:
		var payload partnerPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return nil, shared.NewValidationError(
				fmt.Sprintf("parsing %s payload", env.EventType), err)
		}
		if err := validate.Struct(payload); err != nil {
			return nil, shared.NewValidationError(
				fmt.Sprintf("invalid %s payload", env.EventType), err)
		}
		return BusinessPartnerEvent{
			Type:               env.EventType,
			ID:                 env.EventID,
			BusinessPartnerKey: payload.Key[0].BusinessPartner,
		}, nil
	default:
		return UnknownEvent{Type: env.EventType, ID: env.EventID}, nil
	}
}
