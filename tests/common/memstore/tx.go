package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/device"
	"minute-market/internal/domain/ledger"
	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/payment"
	"minute-market/internal/domain/settings"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/trade"
	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

type tx struct {
	store *Store
	st    *state
}

var _ shared.Tx = (*tx)(nil)

func (t *tx) Users() shared.UserRepository                 { return users{t} }
func (t *tx) Settings() shared.SettingsRepository          { return settingsRepo{t} }
func (t *tx) Tokens() shared.TokenRepository               { return tokens{t} }
func (t *tx) Listings() shared.ListingRepository           { return listings{t} }
func (t *tx) Trades() shared.TradeRepository               { return trades{t} }
func (t *tx) Ledger() shared.LedgerRepository              { return ledgerRepo{t} }
func (t *tx) Payments() shared.PaymentRepository           { return payments{t} }
func (t *tx) Devices() shared.DeviceRepository             { return devices{t} }
func (t *tx) PurchaseItems() shared.PurchaseItemRepository { return purchaseItems{t} }

// Savepoint runs fn on a copy and keeps its writes only when it succeeds.
func (t *tx) Savepoint(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	inner := &tx{store: t.store, st: t.st.clone()}
	if err := fn(ctx, inner); err != nil {
		return err
	}
	*t.st = *inner.st
	return nil
}

type users struct{ *tx }

func (r users) Ensure(_ context.Context, u *user.User) (*user.User, error) {
	for id, existing := range r.st.users {
		if existing.Subject() == u.Subject() {
			email := existing.Email()
			if u.Email() != nil {
				email = u.Email()
			}
			refreshed := user.Restore(id, existing.Subject(), email, u.Role(), existing.CreatedAt())
			r.st.users[id] = refreshed
			return refreshed, nil
		}
	}
	r.st.users[u.ID()] = u
	return u, nil
}

func (r users) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, errNotFound("user")
	}
	return u, nil
}

func (r users) FindBySubject(_ context.Context, subject string) (*user.User, error) {
	for _, u := range r.st.users {
		if u.Subject() == subject {
			return u, nil
		}
	}
	return nil, errNotFound("user")
}

func (r users) Lock(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.users[id]; !ok {
		return errNotFound("user")
	}
	return nil
}

type settingsRepo struct{ *tx }

func (r settingsRepo) Get(context.Context) (settings.Settings, error) {
	return r.st.settings, nil
}

func (r settingsRepo) SetPrice(_ context.Context, price decimal.Decimal, now time.Time) (settings.Settings, error) {
	r.st.settings = settings.Settings{UnitPrice: price, Version: r.st.settings.Version + 1, UpdatedAt: now}
	return r.st.settings, nil
}

type tokens struct{ *tx }

func (r tokens) Get(_ context.Context, id uuid.UUID) (token.Token, error) {
	tk, ok := r.st.tokens[id]
	if !ok {
		return token.Token{}, errNotFound("token")
	}
	return tk, nil
}

func (r tokens) GetForUpdate(ctx context.Context, id uuid.UUID) (token.Token, error) {
	return r.Get(ctx, id)
}

func (r tokens) FindPurchasable(_ context.Context, year, limit int) ([]token.Token, error) {
	var out []token.Token
	for _, tk := range r.st.tokens {
		if tk.IssuedYear == year && tk.Purchasable() {
			out = append(out, tk)
		}
	}
	sortTokens(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r tokens) CountPurchasable(ctx context.Context, year int) (int, error) {
	all, err := r.FindPurchasable(ctx, year, len(r.st.tokens))
	return len(all), err
}

func (r tokens) CountHeld(_ context.Context, holder uuid.UUID, year int, statuses []token.Status) (int, error) {
	n := 0
	for _, tk := range r.st.tokens {
		if tk.IssuedYear != year || !tk.Holder.Is(holder) {
			continue
		}
		for _, s := range statuses {
			if tk.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (r tokens) ActiveMinutes(_ context.Context, holder uuid.UUID) (int, error) {
	total := 0
	for _, tk := range r.st.tokens {
		if tk.Holder.Is(holder) && tk.Status == token.StatusActive {
			total += tk.RemainingMinutes
		}
	}
	return total, nil
}

func (r tokens) Apply(_ context.Context, tr token.Transition) (bool, error) {
	tk, ok := r.st.tokens[tr.ID]
	if !ok || !tr.Matches(tk) {
		return false, nil
	}
	r.st.tokens[tr.ID] = tr.ApplyTo(tk)
	return true, nil
}

func (r tokens) Insert(_ context.Context, ts []token.Token) (int64, error) {
	for _, tk := range ts {
		r.st.tokens[tk.ID] = tk
	}
	return int64(len(ts)), nil
}

func (r tokens) RepriceTreasury(_ context.Context, price decimal.Decimal, now time.Time) (int64, error) {
	var n int64
	for id, tk := range r.st.tokens {
		if tk.Purchasable() {
			tk.OriginalPrice = price
			tk.UpdatedAt = now
			r.st.tokens[id] = tk
			n++
		}
	}
	return n, nil
}

type listings struct{ *tx }

func (r listings) Create(_ context.Context, l *listing.Listing) error {
	for _, existing := range r.st.listings {
		if existing.TokenID == l.TokenID && existing.IsOpen() {
			return errs.Mark(errs.New("duplicate open listing"), errs.ErrConflict)
		}
	}
	r.st.listings[l.ID] = *l
	return nil
}

func (r listings) Get(_ context.Context, id uuid.UUID) (*listing.Listing, error) {
	l, ok := r.st.listings[id]
	if !ok {
		return nil, errNotFound("listing")
	}
	return &l, nil
}

func (r listings) GetForUpdate(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	return r.Get(ctx, id)
}

func (r listings) HasOpenForToken(_ context.Context, tokenID uuid.UUID) (bool, error) {
	for _, l := range r.st.listings {
		if l.TokenID == tokenID && l.IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (r listings) Close(_ context.Context, id uuid.UUID, to listing.Status, now time.Time) (bool, error) {
	l, ok := r.st.listings[id]
	if !ok || !l.IsOpen() {
		return false, nil
	}
	l.Status = to
	l.ClosedAt = &now
	r.st.listings[id] = l
	return true, nil
}

type trades struct{ *tx }

func (r trades) Create(_ context.Context, t trade.Trade) error {
	for _, existing := range r.st.trades {
		if existing.ListingID == t.ListingID {
			return errs.Mark(errs.New("listing already traded"), errs.ErrConflict)
		}
	}
	r.st.trades = append(r.st.trades, t)
	return nil
}

type ledgerRepo struct{ *tx }

func (r ledgerRepo) Append(_ context.Context, entries ...ledger.Entry) error {
	if r.store.LedgerErr != nil {
		return r.store.LedgerErr
	}
	r.st.ledger = append(r.st.ledger, entries...)
	return nil
}

type payments struct{ *tx }

func (r payments) Create(_ context.Context, p *payment.Payment) error {
	r.st.payments[p.ID] = *p
	return nil
}

func (r payments) Get(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := r.st.payments[id]
	if !ok {
		return nil, errNotFound("payment")
	}
	return &p, nil
}

func (r payments) SetSession(_ context.Context, id uuid.UUID, sessionID string, now time.Time) error {
	p, ok := r.st.payments[id]
	if !ok {
		return errNotFound("payment")
	}
	p.SessionID = sessionID
	p.UpdatedAt = now
	r.st.payments[id] = p
	return nil
}

func (r payments) Transition(_ context.Context, id uuid.UUID, from, to payment.Status, providerRef string, now time.Time) (bool, error) {
	p, ok := r.st.payments[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	if providerRef != "" {
		p.ProviderRef = providerRef
	}
	p.UpdatedAt = now
	r.st.payments[id] = p
	return true, nil
}

func (r payments) MarkFulfilled(_ context.Context, id uuid.UUID, now time.Time) error {
	p, ok := r.st.payments[id]
	if !ok {
		return errNotFound("payment")
	}
	p.FulfilledAt = &now
	p.FulfillmentError = nil
	p.UpdatedAt = now
	r.st.payments[id] = p
	return nil
}

func (r payments) RecordFulfillmentError(_ context.Context, id uuid.UUID, reason string, now time.Time) error {
	p, ok := r.st.payments[id]
	if !ok {
		return errNotFound("payment")
	}
	p.FulfillmentError = &reason
	p.UpdatedAt = now
	r.st.payments[id] = p
	return nil
}

type devices struct{ *tx }

func (r devices) RemoveTokenFromOthers(_ context.Context, voipToken string, userID uuid.UUID) (int64, error) {
	var n int64
	for id, d := range r.st.devices {
		if d.VoIPToken == voipToken && d.UserID != userID {
			delete(r.st.devices, id)
			n++
		}
	}
	return n, nil
}

func (r devices) Upsert(_ context.Context, d *device.Device) error {
	for id, existing := range r.st.devices {
		if existing.UserID == d.UserID && existing.VoIPToken == d.VoIPToken {
			existing.UpdatedAt = d.UpdatedAt
			r.st.devices[id] = existing
			return nil
		}
	}
	r.st.devices[d.ID] = *d
	return nil
}

func (r devices) TokensForUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	var out []string
	for _, d := range r.st.devices {
		if d.UserID == userID {
			out = append(out, d.VoIPToken)
		}
	}
	return out, nil
}

type purchaseItems struct{ *tx }

func (r purchaseItems) Record(_ context.Context, items []payment.PurchaseItem) error {
	if r.store.PurchaseItemsErr != nil {
		return r.store.PurchaseItemsErr
	}
	r.st.purchaseItems = append(r.st.purchaseItems, items...)
	return nil
}
