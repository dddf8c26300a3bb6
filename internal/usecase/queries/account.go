package queries

import (
	"context"

	"github.com/google/uuid"

	"minute-market/internal/domain/token"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase"
)

var (
	ErrPaymentNotFound = errs.Refine(errs.ErrNotFound, "payment not found")
	ErrPaymentAccess   = errs.Refine(errs.ErrForbidden, "payment belongs to another user")
)

type AccountQueries interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceView, error)
	GetLedger(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error)
	GetPayment(ctx context.Context, actor usecase.Principal, paymentID uuid.UUID) (*PaymentView, error)
}

type accountQueriesImpl struct {
	store MarketReadStore
}

func NewAccountQueries(store MarketReadStore) AccountQueries {
	return &accountQueriesImpl{store: store}
}

// GetBalance totals minutes over active tokens only; listed tokens are
// shown but not spendable.
func (q *accountQueriesImpl) GetBalance(ctx context.Context, userID uuid.UUID) (*BalanceView, error) {
	tokens, err := q.store.HeldTokens(ctx, userID)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, t := range tokens {
		if t.Status == string(token.StatusActive) {
			total += t.RemainingMinutes
		}
	}
	if tokens == nil {
		tokens = []TokenView{}
	}
	return &BalanceView{UserID: userID, TotalMinutes: total, Tokens: tokens}, nil
}

func (q *accountQueriesImpl) GetLedger(ctx context.Context, userID uuid.UUID, cursor *Cursor, limit int) ([]*LedgerEntryView, *Cursor, error) {
	limit = ValidateLimit(limit)
	after, err := position(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.LedgerEntries(ctx, userID, after, limit+1)
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit, func(e *LedgerEntryView) Keyset { return Keyset{CreatedAt: e.CreatedAt, ID: e.ID} })
	return rows, next, nil
}

// GetPayment lets buyers see their own payments; admins see all.
func (q *accountQueriesImpl) GetPayment(ctx context.Context, actor usecase.Principal, paymentID uuid.UUID) (*PaymentView, error) {
	p, err := q.store.PaymentByID(ctx, paymentID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if p.BuyerID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrPaymentAccess
	}
	return p, nil
}
