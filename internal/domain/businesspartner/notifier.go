package businesspartner

import "context"

// Notification carries everything the confirmation email needs: the
// partner the address belongs to, the address itself, the contact
// person being addressed and the link able to confirm the data.
type Notification struct {
	Partner         Record
	Address         AddressSnapshot
	Contact         Record
	Recipient       string
	ConfirmationURL string
}

// Notifier delivers confirmation requests to a contact person.
// Implementations wrap delivery failures in a shared.Error of kind
// MailingError; callers treat those as non-fatal.
type Notifier interface {
	Send(ctx context.Context, notification Notification) error
}
