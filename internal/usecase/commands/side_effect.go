package commands

import (
	"context"
	"log/slog"

	"minute-market/internal/usecase/shared"
)

// bestEffort runs a non-critical write inside a savepoint of tx. A failure is
// logged and rolled back without affecting the surrounding operation.
func bestEffort(ctx context.Context, logger *slog.Logger, tx shared.Tx, name string, fn func(ctx context.Context, tx shared.Tx) error) {
	if err := tx.Savepoint(ctx, fn); err != nil {
		logger.WarnContext(ctx, "non-critical write failed", "effect", name, "error", err.Error())
	}
}

// detached runs fn after the primary operation committed. Errors are logged only.
func detached(ctx context.Context, logger *slog.Logger, name string, fn func(ctx context.Context) error) {
	if err := fn(context.WithoutCancel(ctx)); err != nil {
		logger.WarnContext(ctx, "side effect failed", "effect", name, "error", err.Error())
	}
}
