// Package memstore is an in-memory shared.UnitOfWork for use case tests.
// Transactions are serialized and see a private copy of the state that is
// published only on commit.
package memstore

import (
	"context"
	"sort"
	"sync"

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

type state struct {
	users         map[uuid.UUID]*user.User
	settings      settings.Settings
	tokens        map[uuid.UUID]token.Token
	listings      map[uuid.UUID]listing.Listing
	trades        []trade.Trade
	ledger        []ledger.Entry
	payments      map[uuid.UUID]payment.Payment
	devices       map[uuid.UUID]device.Device
	purchaseItems []payment.PurchaseItem
}

func newState() *state {
	return &state{
		users:    map[uuid.UUID]*user.User{},
		tokens:   map[uuid.UUID]token.Token{},
		listings: map[uuid.UUID]listing.Listing{},
		payments: map[uuid.UUID]payment.Payment{},
		devices:  map[uuid.UUID]device.Device{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	c.settings = s.settings
	for k, v := range s.tokens {
		c.tokens[k] = v
	}
	for k, v := range s.listings {
		c.listings[k] = v
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.devices {
		c.devices[k] = v
	}
	c.trades = append([]trade.Trade(nil), s.trades...)
	c.ledger = append([]ledger.Entry(nil), s.ledger...)
	c.purchaseItems = append([]payment.PurchaseItem(nil), s.purchaseItems...)
	return c
}

// Store implements shared.UnitOfWork. The exported error fields inject
// failures into single repositories.
type Store struct {
	mu      sync.Mutex
	current *state

	PurchaseItemsErr error
	LedgerErr        error
}

func New() *Store {
	return &Store{current: newState()}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.current.clone()
	if err := fn(ctx, &tx{store: s, st: work}); err != nil {
		return err
	}
	s.current = work
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.current)
}

// Seeding and inspection helpers. They bypass transactions.

func (s *Store) PutUser(u *user.User) {
	s.read(func(st *state) { st.users[u.ID()] = u })
}

func (s *Store) PutTokens(tokens ...token.Token) {
	s.read(func(st *state) {
		for _, t := range tokens {
			st.tokens[t.ID] = t
		}
	})
}

func (s *Store) PutListing(l listing.Listing) {
	s.read(func(st *state) { st.listings[l.ID] = l })
}

func (s *Store) PutPayment(p payment.Payment) {
	s.read(func(st *state) { st.payments[p.ID] = p })
}

func (s *Store) PutDevice(d device.Device) {
	s.read(func(st *state) { st.devices[d.ID] = d })
}

func (s *Store) SetUnitPrice(price decimal.Decimal) {
	s.read(func(st *state) {
		st.settings.UnitPrice = price
		st.settings.Version++
	})
}

func (s *Store) Settings() settings.Settings {
	var out settings.Settings
	s.read(func(st *state) { out = st.settings })
	return out
}

func (s *Store) Token(id uuid.UUID) token.Token {
	var out token.Token
	s.read(func(st *state) { out = st.tokens[id] })
	return out
}

// Tokens returns every token, oldest first.
func (s *Store) Tokens() []token.Token {
	var out []token.Token
	s.read(func(st *state) {
		for _, t := range st.tokens {
			out = append(out, t)
		}
	})
	sortTokens(out)
	return out
}

func (s *Store) Listing(id uuid.UUID) listing.Listing {
	var out listing.Listing
	s.read(func(st *state) { out = st.listings[id] })
	return out
}

func (s *Store) Payment(id uuid.UUID) payment.Payment {
	var out payment.Payment
	s.read(func(st *state) { out = st.payments[id] })
	return out
}

func (s *Store) Trades() []trade.Trade {
	var out []trade.Trade
	s.read(func(st *state) { out = append(out, st.trades...) })
	return out
}

func (s *Store) Ledger() []ledger.Entry {
	var out []ledger.Entry
	s.read(func(st *state) { out = append(out, st.ledger...) })
	return out
}

func (s *Store) PurchaseItems() []payment.PurchaseItem {
	var out []payment.PurchaseItem
	s.read(func(st *state) { out = append(out, st.purchaseItems...) })
	return out
}

func (s *Store) UserBySubject(subject string) *user.User {
	var out *user.User
	s.read(func(st *state) {
		for _, u := range st.users {
			if u.Subject() == subject {
				out = u
			}
		}
	})
	return out
}

func (s *Store) Devices() []device.Device {
	var out []device.Device
	s.read(func(st *state) {
		for _, d := range st.devices {
			out = append(out, d)
		}
	})
	return out
}

func sortTokens(ts []token.Token) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].CreatedAt.Equal(ts[j].CreatedAt) {
			return ts[i].ID.String() < ts[j].ID.String()
		}
		return ts[i].CreatedAt.Before(ts[j].CreatedAt)
	})
}

func errNotFound(what string) error {
	return errs.Mark(errs.Newf("%s not found", what), errs.ErrNotFound)
}
