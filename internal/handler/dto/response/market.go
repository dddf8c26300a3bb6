package response

import (
	"time"

	"github.com/google/uuid"

	"minute-market/internal/domain/listing"
	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

type SupplyResponse struct {
	Year              int    `json:"year"`
	UnitPrice         string `json:"unit_price"`
	PriceVersion      int64  `json:"price_version"`
	TreasuryAvailable int    `json:"treasury_available"`
	TotalMinted       int    `json:"total_minted"`
	TotalSold         int    `json:"total_sold"`
}

func FromSupplyView(v *queries.SupplyView) (*SupplyResponse, error) {
	return copyNew[SupplyResponse](v)
}

type ListingResponse struct {
	ID               uuid.UUID `json:"id"`
	TokenID          uuid.UUID `json:"token_id"`
	SellerID         uuid.UUID `json:"seller_id"`
	Price            string    `json:"price"`
	Status           string    `json:"status,omitempty"`
	IssuedYear       int       `json:"issued_year,omitempty"`
	RemainingMinutes int       `json:"remaining_minutes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListingPageResponse struct {
	Items      []ListingResponse `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromListingViews(items []*queries.ListingView, next *queries.Cursor) (*ListingPageResponse, error) {
	out, err := copySlice[ListingResponse](items)
	if err != nil {
		return nil, err
	}
	return &ListingPageResponse{Items: out, NextCursor: nextCursor(next)}, nil
}

func FromListing(l *listing.Listing) (*ListingResponse, error) {
	return copyNew[ListingResponse](l)
}

type PurchaseResponse struct {
	TokenIDs     []uuid.UUID `json:"token_ids"`
	TotalMinutes int         `json:"total_minutes"`
	UnitPrice    string      `json:"unit_price"`
	Amount       string      `json:"amount"`
}

func FromPurchaseResult(r *commands.PurchaseResult) (*PurchaseResponse, error) {
	return copyNew[PurchaseResponse](r)
}

type BuyListingResponse struct {
	TradeID   uuid.UUID `json:"trade_id"`
	ListingID uuid.UUID `json:"listing_id"`
	TokenID   uuid.UUID `json:"token_id"`
	Price     string    `json:"price"`
}

func FromBuyListingResult(r *commands.BuyListingResult) (*BuyListingResponse, error) {
	return copyNew[BuyListingResponse](r)
}

type CheckoutResponse struct {
	PaymentID uuid.UUID `json:"payment_id"`
	SessionID string    `json:"session_id"`
	URL       string    `json:"url"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{PaymentID: r.PaymentID, SessionID: r.SessionID, URL: r.URL}
}

type PaymentResponse struct {
	ID               uuid.UUID  `json:"id"`
	BuyerID          uuid.UUID  `json:"buyer_id"`
	Kind             string     `json:"kind"`
	Status           string     `json:"status"`
	Quantity         int        `json:"quantity"`
	Year             int        `json:"year"`
	ListingID        *uuid.UUID `json:"listing_id,omitempty"`
	Amount           string     `json:"amount"`
	SessionID        *string    `json:"session_id,omitempty"`
	FulfilledAt      *time.Time `json:"fulfilled_at,omitempty"`
	FulfillmentError *string    `json:"fulfillment_error,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromPaymentView(v *queries.PaymentView) (*PaymentResponse, error) {
	return copyNew[PaymentResponse](v)
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Outcome  string `json:"outcome"`
}

func nextCursor(c *queries.Cursor) string {
	if c == nil {
		return ""
	}
	return c.After
}
