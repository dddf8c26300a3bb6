package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TokenView represents a token as its holder sees it
type TokenView struct {
	ID               uuid.UUID       `json:"id"`
	IssuedYear       int             `json:"issued_year"`
	RemainingMinutes int             `json:"remaining_minutes"`
	Status           string          `json:"status"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	CreatedAt        time.Time       `json:"created_at"`
}

type BalanceView struct {
	UserID       uuid.UUID   `json:"user_id"`
	TotalMinutes int         `json:"total_minutes"`
	Tokens       []TokenView `json:"tokens"`
}

// ListingView represents an open offer joined with its token
type ListingView struct {
	ID               uuid.UUID       `json:"id"`
	TokenID          uuid.UUID       `json:"token_id"`
	SellerID         uuid.UUID       `json:"seller_id"`
	Price            decimal.Decimal `json:"price"`
	IssuedYear       int             `json:"issued_year"`
	RemainingMinutes int             `json:"remaining_minutes"`
	CreatedAt        time.Time       `json:"created_at"`
}

type SupplyView struct {
	Year              int             `json:"year"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	PriceVersion      int64           `json:"price_version"`
	TreasuryAvailable int             `json:"treasury_available"`
	TotalMinted       int             `json:"total_minted"`
	TotalSold         int             `json:"total_sold"`
}

type LedgerEntryView struct {
	ID        uuid.UUID       `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

type PaymentView struct {
	ID               uuid.UUID       `json:"id"`
	BuyerID          uuid.UUID       `json:"buyer_id"`
	Kind             string          `json:"kind"`
	Status           string          `json:"status"`
	Quantity         int             `json:"quantity"`
	Year             int             `json:"year"`
	ListingID        *uuid.UUID      `json:"listing_id,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	SessionID        *string         `json:"session_id,omitempty"`
	FulfilledAt      *time.Time      `json:"fulfilled_at,omitempty"`
	FulfillmentError *string         `json:"fulfillment_error,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ClientView is an admin's view of a client account
type ClientView struct {
	ID            uuid.UUID `json:"id"`
	Subject       string    `json:"subject"`
	Email         *string   `json:"email,omitempty"`
	TokensHeld    int       `json:"tokens_held"`
	ActiveMinutes int       `json:"active_minutes"`
	CreatedAt     time.Time `json:"created_at"`
}
