package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/ledger"
	"minute-market/internal/domain/money"
	"minute-market/internal/domain/payment"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/trade"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

// Fulfiller moves tokens to their buyers. Direct purchases and paid
// checkouts share it, so both paths enforce the same rules.
type Fulfiller struct {
	engine *ListingEngine
	clock  clock.Clock
	logger *slog.Logger
	market config.MarketConfig
}

func NewFulfiller(engine *ListingEngine, clk clock.Clock, logger *slog.Logger, cfg config.Config) *Fulfiller {
	return &Fulfiller{engine: engine, clock: clk, logger: logger, market: cfg.Market}
}

// FulfillTreasury hands a paid treasury checkout its tokens at the unit
// price locked when the checkout was created.
func (f *Fulfiller) FulfillTreasury(ctx context.Context, tx shared.Tx, p *payment.Payment) ([]uuid.UUID, error) {
	return f.purchaseFromTreasury(ctx, tx, p.BuyerID, p.Quantity, p.Year, p.UnitPrice(), &p.ID)
}

// FulfillListing completes the sale behind a paid listing checkout.
func (f *Fulfiller) FulfillListing(ctx context.Context, tx shared.Tx, p *payment.Payment) (*trade.Trade, error) {
	if p.ListingID == nil {
		return nil, errs.Mark(errs.Newf("payment %s has no listing", p.ID), errs.ErrInconsistentState)
	}
	return f.buyListing(ctx, tx, p.BuyerID, *p.ListingID)
}

func (f *Fulfiller) purchaseFromTreasury(
	ctx context.Context,
	tx shared.Tx,
	buyerID uuid.UUID,
	quantity, year int,
	unit decimal.Decimal,
	paymentID *uuid.UUID,
) ([]uuid.UUID, error) {
	if quantity <= 0 {
		return nil, token.ErrInvalidQuantity
	}
	if _, err := money.CheckedTotal(unit, quantity); err != nil {
		return nil, err
	}
	if err := tx.Users().Lock(ctx, buyerID); err != nil {
		return nil, err
	}
	if err := f.checkQuota(ctx, tx, buyerID, year, quantity); err != nil {
		return nil, err
	}

	claimed, err := f.claim(ctx, tx, buyerID, quantity, year)
	if err != nil {
		return nil, err
	}

	now := f.clock.Now()
	if err := tx.Ledger().Append(ctx, ledger.Purchase(buyerID, year, quantity, unit, now)); err != nil {
		return nil, err
	}
	bestEffort(ctx, f.logger, tx, "purchase_items", func(ctx context.Context, tx shared.Tx) error {
		return tx.PurchaseItems().Record(ctx, payment.ItemsFor(claimed, paymentID, unit, year, now))
	})
	return claimed, nil
}

// claim takes quantity treasury tokens with compare-and-set updates. Tokens
// lost to a concurrent buyer are replaced by re-selecting, a bounded number
// of times.
func (f *Fulfiller) claim(ctx context.Context, tx shared.Tx, buyerID uuid.UUID, quantity, year int) ([]uuid.UUID, error) {
	rounds := max(f.market.ClaimRounds, 1)
	claimed := make([]uuid.UUID, 0, quantity)
	for round := 0; round < rounds && len(claimed) < quantity; round++ {
		candidates, err := tx.Tokens().FindPurchasable(ctx, year, quantity-len(claimed))
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			break
		}
		for _, c := range candidates {
			ok, err := tx.Tokens().Apply(ctx, token.Claim(c.ID, buyerID))
			if err != nil {
				return nil, err
			}
			if ok {
				claimed = append(claimed, c.ID)
			}
		}
	}
	if len(claimed) < quantity {
		return nil, errs.Mark(
			errs.Newf("requested %d tokens of %d, only %d available", quantity, year, len(claimed)),
			errs.ErrInsufficientSupply,
		)
	}
	return claimed, nil
}

func (f *Fulfiller) buyListing(ctx context.Context, tx shared.Tx, buyerID, listingID uuid.UUID) (*trade.Trade, error) {
	l, err := f.engine.RequireOpen(ctx, tx, listingID)
	if err != nil {
		return nil, err
	}
	if l.SellerID == buyerID {
		return nil, errs.ErrSelfTrade
	}
	tok, err := tx.Tokens().Get(ctx, l.TokenID)
	if err != nil {
		return nil, err
	}
	if err := tx.Users().Lock(ctx, buyerID); err != nil {
		return nil, err
	}
	if err := f.checkQuota(ctx, tx, buyerID, tok.IssuedYear, 1); err != nil {
		return nil, err
	}

	if err := f.engine.MarkSold(ctx, tx, l); err != nil {
		return nil, err
	}
	moved, err := tx.Tokens().Apply(ctx, token.Transfer(l.TokenID, l.SellerID, buyerID))
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, errs.Mark(
			errs.Newf("token %s no longer matches listing %s", l.TokenID, l.ID),
			errs.ErrInconsistentState,
		)
	}

	t := trade.New(l.ID, l.TokenID, l.SellerID, buyerID, l.Price, f.clock.Now())
	if err := tx.Trades().Create(ctx, t); err != nil {
		return nil, err
	}
	entries := ledger.ForTrade(t)
	if err := tx.Ledger().Append(ctx, entries[0], entries[1]); err != nil {
		return nil, err
	}
	return &t, nil
}

func (f *Fulfiller) checkQuota(ctx context.Context, tx shared.Tx, userID uuid.UUID, year, adding int) error {
	held, err := tx.Tokens().CountHeld(ctx, userID, year, token.HeldStatuses)
	if err != nil {
		return err
	}
	if held+adding > f.market.MaxTokensPerYear {
		return errs.Mark(
			errs.Newf("holding %d tokens of %d, limit is %d per year", held+adding, year, f.market.MaxTokensPerYear),
			errs.ErrQuotaExceeded,
		)
	}
	return nil
}
