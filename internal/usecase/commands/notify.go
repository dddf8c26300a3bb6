package commands

import (
	"context"
	"log/slog"

	"minute-market/internal/domain/money"
	"minute-market/internal/domain/trade"
	"minute-market/internal/usecase/shared"
)

// SaleNotifier pushes a "token sold" message to the seller's devices.
type SaleNotifier struct {
	uow       shared.UnitOfWork
	messenger DeviceMessenger
	logger    *slog.Logger
}

func NewSaleNotifier(uow shared.UnitOfWork, messenger DeviceMessenger, logger *slog.Logger) *SaleNotifier {
	return &SaleNotifier{uow: uow, messenger: messenger, logger: logger}
}

// TokenSold returns an error only when the seller's devices cannot be read.
// Individual delivery failures are logged.
func (n *SaleNotifier) TokenSold(ctx context.Context, t trade.Trade) error {
	var tokens []string
	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		tokens, err = tx.Devices().TokensForUser(ctx, t.SellerID)
		return err
	})
	if err != nil {
		return err
	}

	payload := map[string]any{
		"type":      "token_sold",
		"tradeId":   t.ID.String(),
		"listingId": t.ListingID.String(),
		"tokenId":   t.TokenID.String(),
		"price":     money.Format(t.Price),
	}
	for _, tok := range tokens {
		id, err := n.messenger.Send(ctx, tok, payload)
		if err != nil {
			n.logger.WarnContext(ctx, "push delivery failed", "trade_id", t.ID, "error", err.Error())
			continue
		}
		n.logger.InfoContext(ctx, "push delivered", "trade_id", t.ID, "delivery_id", id)
	}
	return nil
}

// notifySale runs after the trade's transaction committed.
func notifySale(ctx context.Context, logger *slog.Logger, n *SaleNotifier, t *trade.Trade) {
	if n == nil || t == nil {
		return
	}
	detached(ctx, logger, "sale_notification", func(ctx context.Context) error {
		return n.TokenSold(ctx, *t)
	})
}
