package payment

import "github.com/google/uuid"

const (
	MetaType      = "type"
	MetaBuyerID   = "buyerId"
	MetaQuantity  = "quantity"
	MetaYear      = "year"
	MetaPaymentID = "paymentId"
	MetaListingID = "listingId"
)

type EventType string

const (
	EventCheckoutCompleted  EventType = "checkout.session.completed"
	EventCheckoutExpired    EventType = "checkout.session.expired"
	EventAsyncPaymentFailed EventType = "checkout.session.async_payment_failed"
)

// Event is a verified provider notification about a checkout session.
type Event struct {
	ID         string
	Type       EventType
	SessionID  string
	PaymentRef string
	Metadata   map[string]string
}

func (e Event) PaymentID() (uuid.UUID, bool) {
	raw, ok := e.Metadata[MetaPaymentID]
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (t EventType) Terminal() bool {
	return t == EventCheckoutExpired || t == EventAsyncPaymentFailed
}
