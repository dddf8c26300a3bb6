//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/user"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/config"
	"minute-market/internal/usecase/commands"
	"minute-market/tests/common/memstore"
)

var (
	baseTime  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	unitPrice = decimal.RequireFromString("4.99")
)

// fixture wires the market use cases onto an in-memory store.
type fixture struct {
	store     *memstore.Store
	clock     *clock.MockClock
	cfg       config.Config
	logger    *slog.Logger
	engine    *commands.ListingEngine
	fulfiller *commands.Fulfiller
}

func newFixture() *fixture {
	cfg := config.NewTestConfig()
	clk := clock.NewMockClock(baseTime)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := commands.NewListingEngine(clk)
	return &fixture{
		store:     memstore.New(),
		clock:     clk,
		cfg:       cfg,
		logger:    logger,
		engine:    engine,
		fulfiller: commands.NewFulfiller(engine, clk, logger, cfg),
	}
}

func (f *fixture) user(t *testing.T, subject string) uuid.UUID {
	t.Helper()
	u, err := user.NewUser(subject, nil, user.RoleClient, f.clock.Now())
	require.NoError(t, err)
	f.store.PutUser(u)
	return u.ID()
}

// mint puts n treasury tokens of year into the store, oldest first, and
// sets the unit price.
func (f *fixture) mint(t *testing.T, n, year int) []token.Token {
	t.Helper()
	tokens, err := token.Mint(n, year, token.DefaultMinutes, unitPrice, f.clock.Now())
	require.NoError(t, err)
	f.store.PutTokens(tokens...)
	f.store.SetUnitPrice(unitPrice)
	return tokens
}

// owned puts one active token held by owner into the store.
func (f *fixture) owned(t *testing.T, owner uuid.UUID, year int) token.Token {
	t.Helper()
	tokens, err := token.Mint(1, year, token.DefaultMinutes, unitPrice, f.clock.Now())
	require.NoError(t, err)
	tk := token.Claim(tokens[0].ID, owner).ApplyTo(tokens[0])
	f.store.PutTokens(tk)
	return tk
}

// listed puts an open listing of a fresh token held by seller into the store.
func (f *fixture) listed(t *testing.T, seller uuid.UUID, price string) listing.Listing {
	t.Helper()
	tk := f.owned(t, seller, 2025)
	tk = token.List(tk.ID, seller).ApplyTo(tk)
	f.store.PutTokens(tk)
	l, err := listing.New(tk.ID, seller, decimal.RequireFromString(price), f.clock.Now())
	require.NoError(t, err)
	f.store.PutListing(*l)
	return *l
}

func (f *fixture) heldBy(holder uuid.UUID) []token.Token {
	var out []token.Token
	for _, tk := range f.store.Tokens() {
		if tk.Holder.Is(holder) {
			out = append(out, tk)
		}
	}
	return out
}
