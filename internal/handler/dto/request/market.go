package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserID fields are optional. When present they must name the caller.

type PurchaseRequest struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=1000"`
	Year     int    `json:"year" binding:"omitempty,min=2000,max=9999"`
}

type ListTokenRequest struct {
	UserID  string          `json:"user_id"`
	TokenID uuid.UUID       `json:"token_id" binding:"required"`
	Price   decimal.Decimal `json:"price" binding:"required"`
}

type ListingActionRequest struct {
	UserID string `json:"user_id"`
}

type CheckoutTreasuryRequest struct {
	UserID   string `json:"user_id"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=1000"`
	Year     int    `json:"year" binding:"omitempty,min=2000,max=9999"`
}

type CheckoutListingRequest struct {
	UserID    string    `json:"user_id"`
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
}
