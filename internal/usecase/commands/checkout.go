package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"minute-market/internal/domain/listing"
	"minute-market/internal/domain/payment"
	"minute-market/internal/domain/token"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

type CheckoutResult struct {
	PaymentID uuid.UUID
	SessionID string
	URL       string
}

type CheckoutCommands interface {
	CheckoutTreasury(ctx context.Context, buyerID uuid.UUID, quantity, year int) (*CheckoutResult, error)
	CheckoutListing(ctx context.Context, buyerID, listingID uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	uow       shared.UnitOfWork
	provider  PaymentProvider
	fulfiller *Fulfiller
	clock     clock.Clock
	logger    *slog.Logger
	currency  string
	appURL    string
}

func NewCheckoutUseCase(
	uow shared.UnitOfWork,
	provider PaymentProvider,
	fulfiller *Fulfiller,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		uow:       uow,
		provider:  provider,
		fulfiller: fulfiller,
		clock:     clk,
		logger:    logger,
		currency:  cfg.Payment.Currency,
		appURL:    strings.TrimRight(cfg.Server.AppURL, "/"),
	}
}

func (uc *checkoutUseCaseImpl) CheckoutTreasury(ctx context.Context, buyerID uuid.UUID, quantity, year int) (*CheckoutResult, error) {
	if quantity <= 0 {
		return nil, payment.ErrInvalidQuantity
	}
	if year == 0 {
		year = clock.Year(uc.clock)
	}
	if err := token.ValidateYear(year); err != nil {
		return nil, err
	}

	var p *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		st, err := tx.Settings().Get(ctx)
		if err != nil {
			return err
		}
		unit, err := st.RequirePrice()
		if err != nil {
			return err
		}
		if err := uc.fulfiller.checkQuota(ctx, tx, buyerID, year, quantity); err != nil {
			return err
		}
		available, err := tx.Tokens().CountPurchasable(ctx, year)
		if err != nil {
			return err
		}
		if available < quantity {
			return errs.Mark(
				errs.Newf("requested %d tokens of %d, only %d available", quantity, year, available),
				errs.ErrInsufficientSupply,
			)
		}
		p, err = payment.NewTreasury(buyerID, quantity, year, unit, uc.clock.Now())
		if err != nil {
			return err
		}
		return tx.Payments().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.openSession(ctx, p)
}

func (uc *checkoutUseCaseImpl) CheckoutListing(ctx context.Context, buyerID, listingID uuid.UUID) (*CheckoutResult, error) {
	var p *payment.Payment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		l, err := tx.Listings().Get(ctx, listingID)
		if err != nil {
			return err
		}
		if !l.IsOpen() {
			return listing.ErrNotOpen
		}
		if l.SellerID == buyerID {
			return errs.ErrSelfTrade
		}
		tok, err := tx.Tokens().Get(ctx, l.TokenID)
		if err != nil {
			return err
		}
		if err := uc.fulfiller.checkQuota(ctx, tx, buyerID, tok.IssuedYear, 1); err != nil {
			return err
		}
		p = payment.NewListing(buyerID, l.ID, tok.IssuedYear, l.Price, uc.clock.Now())
		return tx.Payments().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.openSession(ctx, p)
}

// openSession runs after the pending payment committed, so a provider
// failure or timeout leaves it pending and nothing else.
func (uc *checkoutUseCaseImpl) openSession(ctx context.Context, p *payment.Payment) (*CheckoutResult, error) {
	sess, err := uc.provider.CreateCheckoutSession(ctx, CheckoutRequest{
		PaymentID:  p.ID,
		Item:       p.LineItem(uc.currency),
		Metadata:   p.Metadata(),
		SuccessURL: uc.appURL + "/?payment=success",
		CancelURL:  uc.appURL + "/?payment=cancel",
	})
	if err != nil {
		uc.logger.ErrorContext(ctx, "checkout session failed", "payment_id", p.ID, "error", err.Error())
		return nil, errs.Mark(errs.Wrap(err, "create checkout session"), errs.ErrUpstream)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Payments().SetSession(ctx, p.ID, sess.SessionID, uc.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "checkout session created", "payment_id", p.ID, "kind", p.Kind, "session_id", sess.SessionID)
	return &CheckoutResult{PaymentID: p.ID, SessionID: sess.SessionID, URL: sess.URL}, nil
}
