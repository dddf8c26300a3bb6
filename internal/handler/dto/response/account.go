package response

import (
	"time"

	"github.com/google/uuid"

	"minute-market/internal/domain/device"
	"minute-market/internal/usecase/commands"
	"minute-market/internal/usecase/queries"
)

type TokenResponse struct {
	ID               uuid.UUID `json:"id"`
	IssuedYear       int       `json:"issued_year"`
	RemainingMinutes int       `json:"remaining_minutes"`
	Status           string    `json:"status"`
	OriginalPrice    string    `json:"original_price"`
	CreatedAt        time.Time `json:"created_at"`
}

type BalanceResponse struct {
	UserID       uuid.UUID       `json:"user_id"`
	TotalMinutes int             `json:"total_minutes"`
	Tokens       []TokenResponse `json:"tokens"`
}

func FromBalanceView(v *queries.BalanceView) (*BalanceResponse, error) {
	out, err := copyNew[BalanceResponse](v)
	if err != nil {
		return nil, err
	}
	if out.Tokens == nil {
		out.Tokens = []TokenResponse{}
	}
	return out, nil
}

type LedgerEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Amount    string    `json:"amount"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type LedgerPageResponse struct {
	Items      []LedgerEntryResponse `json:"items"`
	NextCursor string                `json:"next_cursor,omitempty"`
}

func FromLedgerViews(items []*queries.LedgerEntryView, next *queries.Cursor) (*LedgerPageResponse, error) {
	out, err := copySlice[LedgerEntryResponse](items)
	if err != nil {
		return nil, err
	}
	return &LedgerPageResponse{Items: out, NextCursor: nextCursor(next)}, nil
}

type SyncUserResponse struct {
	UserID  uuid.UUID `json:"user_id"`
	Subject string    `json:"subject"`
	Email   *string   `json:"email,omitempty"`
	Role    string    `json:"role"`
}

func FromSyncUserResult(r *commands.SyncUserResult) (*SyncUserResponse, error) {
	return copyNew[SyncUserResponse](r)
}

type DeviceResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromDevice(d *device.Device) *DeviceResponse {
	return &DeviceResponse{ID: d.ID, UserID: d.UserID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}
