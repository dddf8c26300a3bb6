package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/money"
	"minute-market/internal/domain/token"
	"minute-market/internal/domain/trade"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/usecase/shared"
)

type PurchaseResult struct {
	TokenIDs     []uuid.UUID
	TotalMinutes int
	UnitPrice    decimal.Decimal
	Amount       decimal.Decimal
}

type BuyListingResult struct {
	TradeID   uuid.UUID
	ListingID uuid.UUID
	TokenID   uuid.UUID
	Price     decimal.Decimal
}

type MarketCommands interface {
	Purchase(ctx context.Context, buyerID uuid.UUID, quantity, year int) (*PurchaseResult, error)
	ListToken(ctx context.Context, sellerID, tokenID uuid.UUID, price decimal.Decimal) (*listing.Listing, error)
	CancelListing(ctx context.Context, sellerID, listingID uuid.UUID) error
	BuyListing(ctx context.Context, buyerID, listingID uuid.UUID) (*BuyListingResult, error)
}

type marketUseCaseImpl struct {
	uow       shared.UnitOfWork
	engine    *ListingEngine
	fulfiller *Fulfiller
	notifier  *SaleNotifier
	clock     clock.Clock
	logger    *slog.Logger
}

func NewMarketUseCase(
	uow shared.UnitOfWork,
	engine *ListingEngine,
	fulfiller *Fulfiller,
	notifier *SaleNotifier,
	clk clock.Clock,
	logger *slog.Logger,
) MarketCommands {
	return &marketUseCaseImpl{
		uow:       uow,
		engine:    engine,
		fulfiller: fulfiller,
		notifier:  notifier,
		clock:     clk,
		logger:    logger,
	}
}

func (uc *marketUseCaseImpl) Purchase(ctx context.Context, buyerID uuid.UUID, quantity, year int) (*PurchaseResult, error) {
	if quantity <= 0 {
		return nil, token.ErrInvalidQuantity
	}
	if year == 0 {
		year = clock.Year(uc.clock)
	}
	if err := token.ValidateYear(year); err != nil {
		return nil, err
	}

	var res PurchaseResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		st, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		unit, err := st.RequirePrice()
		if err != nil {
			return err
		}
		ids, err := uc.fulfiller.purchaseFromTreasury(ctx, tx, buyerID, quantity, year, unit, nil)
		if err != nil {
			return err
		}
		minutes, err := tx.Tokens().ActiveMinutes(ctx, buyerID)
		if err != nil {
			return err
		}
		res = PurchaseResult{
			TokenIDs:     ids,
			TotalMinutes: minutes,
			UnitPrice:    unit,
			Amount:       money.Total(unit, quantity),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "treasury purchase", "buyer_id", buyerID, "year", year, "quantity", quantity)
	return &res, nil
}

func (uc *marketUseCaseImpl) ListToken(ctx context.Context, sellerID, tokenID uuid.UUID, price decimal.Decimal) (*listing.Listing, error) {
	if _, err := money.Positive(price); err != nil {
		return nil, err
	}

	var l *listing.Listing
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		l, err = uc.engine.Open(ctx, tx, tokenID, sellerID, price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *marketUseCaseImpl) CancelListing(ctx context.Context, sellerID, listingID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := uc.engine.Cancel(ctx, tx, listingID, sellerID)
		return err
	})
}

func (uc *marketUseCaseImpl) BuyListing(ctx context.Context, buyerID, listingID uuid.UUID) (*BuyListingResult, error) {
	var sold *trade.Trade
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		sold, err = uc.fulfiller.buyListing(ctx, tx, buyerID, listingID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "listing sold", "listing_id", sold.ListingID, "buyer_id", buyerID)
	notifySale(ctx, uc.logger, uc.notifier, sold)
	return &BuyListingResult{
		TradeID:   sold.ID,
		ListingID: sold.ListingID,
		TokenID:   sold.TokenID,
		Price:     sold.Price,
	}, nil
}
