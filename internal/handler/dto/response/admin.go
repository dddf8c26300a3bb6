package response

import (
	"time"

	"github.com/google/uuid"

	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

type MintResponse struct {
	Minted    int64  `json:"minted"`
	Year      int    `json:"year"`
	UnitPrice string `json:"unit_price"`
	Version   int64  `json:"version"`
}

func FromMintResult(r *commands.MintResult) (*MintResponse, error) {
	return copyNew[MintResponse](r)
}

type PriceResponse struct {
	UnitPrice string `json:"unit_price"`
	Version   int64  `json:"version"`
	Repriced  int64  `json:"repriced"`
}

func FromPriceResult(r *commands.PriceResult) (*PriceResponse, error) {
	return copyNew[PriceResponse](r)
}

type CreateClientResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Subject  string    `json:"subject"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func FromCreateClientResult(r *commands.CreateClientResult) *CreateClientResponse {
	return &CreateClientResponse{UserID: r.UserID, Subject: r.Subject, Username: r.Username, Email: r.Email}
}

type ClientResponse struct {
	ID            uuid.UUID `json:"id"`
	Subject       string    `json:"subject"`
	Email         *string   `json:"email,omitempty"`
	TokensHeld    int       `json:"tokens_held"`
	ActiveMinutes int       `json:"active_minutes"`
	CreatedAt     time.Time `json:"created_at"`
}

type ClientPageResponse struct {
	Items      []ClientResponse `json:"items"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func FromClientViews(items []*queries.ClientView, next *queries.Cursor) (*ClientPageResponse, error) {
	out, err := copySlice[ClientResponse](items)
	if err != nil {
		return nil, err
	}
	return &ClientPageResponse{Items: out, NextCursor: nextCursor(next)}, nil
}
