package commands

import (
	"context"
	"log/slog"

	"minute-market/internal/domain/payment"
	"minute-market/internal/domain/trade"
	"minute-market/internal/pkg/clock"
	"minute-market/internal/pkg/errs"
	"minute-market/internal/usecase/shared"
)

type WebhookOutcome string

const (
	OutcomeFulfilled         WebhookOutcome = "fulfilled"
	OutcomeFulfillmentFailed WebhookOutcome = "fulfillment_failed"
	OutcomeFailed            WebhookOutcome = "failed"
	OutcomeDuplicate         WebhookOutcome = "duplicate"
	OutcomeIgnored           WebhookOutcome = "ignored"
)

// PaymentReconciler applies verified provider events. Every outcome other
// than an error is acknowledged to the provider.
type PaymentReconciler interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookOutcome, error)
}

type reconcilerImpl struct {
	uow       shared.UnitOfWork
	provider  PaymentProvider
	fulfiller *Fulfiller
	notifier  *SaleNotifier
	archive   WebhookArchive
	marker    EventMarker
	clock     clock.Clock
	logger    *slog.Logger
}

func NewPaymentReconciler(
	uow shared.UnitOfWork,
	provider PaymentProvider,
	fulfiller *Fulfiller,
	notifier *SaleNotifier,
	archive WebhookArchive,
	marker EventMarker,
	clk clock.Clock,
	logger *slog.Logger,
) PaymentReconciler {
	return &reconcilerImpl{
		uow:       uow,
		provider:  provider,
		fulfiller: fulfiller,
		notifier:  notifier,
		archive:   archive,
		marker:    marker,
		clock:     clk,
		logger:    logger,
	}
}

func (r *reconcilerImpl) HandleWebhook(ctx context.Context, payload []byte, signature string) (WebhookOutcome, error) {
	ev, err := r.provider.VerifyEvent(payload, signature)
	if err != nil {
		r.logger.WarnContext(ctx, "webhook rejected", "error", err.Error())
		return "", err
	}
	log := r.logger.With("event_id", ev.ID, "event_type", string(ev.Type))

	detached(ctx, log, "webhook_archive", func(ctx context.Context) error {
		return r.archive.Archive(ctx, ev.ID, payload)
	})

	seen, err := r.marker.Seen(ctx, ev.ID)
	if err != nil {
		log.WarnContext(ctx, "event marker lookup failed", "error", err.Error())
	}
	if seen {
		log.InfoContext(ctx, "webhook already processed")
		return OutcomeDuplicate, nil
	}

	var (
		outcome WebhookOutcome
		sold    *trade.Trade
	)
	switch {
	case ev.Type == payment.EventCheckoutCompleted:
		outcome, sold, err = r.complete(ctx, log, ev)
	case ev.Type.Terminal():
		outcome, err = r.fail(ctx, log, ev)
	default:
		log.InfoContext(ctx, "webhook ignored")
		return OutcomeIgnored, nil
	}
	if err != nil {
		log.ErrorContext(ctx, "webhook processing failed", "error", err.Error())
		return "", err
	}

	if err := r.marker.Mark(ctx, ev.ID); err != nil {
		log.WarnContext(ctx, "event marker write failed", "error", err.Error())
	}
	notifySale(ctx, log, r.notifier, sold)
	log.InfoContext(ctx, "webhook processed", "outcome", string(outcome))
	return outcome, nil
}

// complete flips the payment to paid and fulfills it in the same
// transaction. A business-rule failure is kept on the payment instead of
// failing the webhook, since redelivery would hit the same rule.
func (r *reconcilerImpl) complete(ctx context.Context, log *slog.Logger, ev payment.Event) (WebhookOutcome, *trade.Trade, error) {
	pid, ok := ev.PaymentID()
	if !ok {
		log.WarnContext(ctx, "webhook without payment id")
		return OutcomeIgnored, nil, nil
	}

	var (
		outcome WebhookOutcome
		sold    *trade.Trade
	)
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sold = nil
		p, err := tx.Payments().Get(ctx, pid)
		if err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				log.WarnContext(ctx, "webhook for unknown payment", "payment_id", pid)
				outcome = OutcomeIgnored
				return nil
			}
			return err
		}

		now := r.clock.Now()
		moved, err := tx.Payments().Transition(ctx, pid, payment.StatusPending, payment.StatusPaid, ev.PaymentRef, now)
		if err != nil {
			return err
		}
		if !moved {
			log.InfoContext(ctx, "payment no longer pending", "payment_id", pid)
			outcome = OutcomeDuplicate
			return nil
		}

		ferr := tx.Savepoint(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			sold, err = r.fulfill(ctx, tx, p)
			return err
		})
		if ferr != nil {
			if !errs.IsBusinessRule(ferr) {
				return ferr
			}
			sold = nil
			log.WarnContext(ctx, "payment fulfillment rejected", "payment_id", pid, "kind", string(errs.KindOf(ferr)), "error", ferr.Error())
			outcome = OutcomeFulfillmentFailed
			return tx.Payments().RecordFulfillmentError(ctx, pid, errs.PublicMessage(ferr), now)
		}
		outcome = OutcomeFulfilled
		return tx.Payments().MarkFulfilled(ctx, pid, now)
	})
	if err != nil {
		return "", nil, err
	}
	return outcome, sold, nil
}

func (r *reconcilerImpl) fulfill(ctx context.Context, tx shared.Tx, p *payment.Payment) (*trade.Trade, error) {
	switch p.Kind {
	case payment.KindTreasury:
		_, err := r.fulfiller.FulfillTreasury(ctx, tx, p)
		return nil, err
	case payment.KindListing:
		return r.fulfiller.FulfillListing(ctx, tx, p)
	default:
		return nil, errs.Mark(errs.Newf("unknown payment kind %q", p.Kind), errs.ErrInconsistentState)
	}
}

func (r *reconcilerImpl) fail(ctx context.Context, log *slog.Logger, ev payment.Event) (WebhookOutcome, error) {
	pid, ok := ev.PaymentID()
	if !ok {
		log.WarnContext(ctx, "webhook without payment id")
		return OutcomeIgnored, nil
	}

	var outcome WebhookOutcome
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		moved, err := tx.Payments().Transition(ctx, pid, payment.StatusPending, payment.StatusFailed, ev.PaymentRef, r.clock.Now())
		if err != nil {
			return err
		}
		if moved {
			outcome = OutcomeFailed
			return nil
		}
		if _, err := tx.Payments().Get(ctx, pid); err != nil {
			if errs.Is(err, errs.ErrNotFound) {
				log.WarnContext(ctx, "webhook for unknown payment", "payment_id", pid)
				outcome = OutcomeIgnored
				return nil
			}
			return err
		}
		outcome = OutcomeDuplicate
		return nil
	})
	if err != nil {
		return "", err
	}
	return outcome, nil
}
