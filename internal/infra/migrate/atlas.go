// Package migrate applies the versioned SQL migrations with the Atlas CLI.
package migrate

import (
	"context"
	"log/slog"
	"os"

	"ariga.io/atlas-go-sdk/atlasexec"

	"minute-market/internal/pkg/config"
	"minute-market/internal/pkg/errs"
)

// Apply runs every pending migration in cfg.MigrationsDir against the database.
func Apply(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) error {
	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(cfg.MigrationsDir)))
	if err != nil {
		return errs.Wrap(err, "atlas: prepare working dir")
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), cfg.AtlasBin)
	if err != nil {
		return errs.Wrap(err, "atlas: init client")
	}
	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{URL: cfg.BuildDSN()})
	if err != nil {
		return errs.Wrap(err, "atlas: migrate apply")
	}
	logger.Info("マイグレーションを適用しました",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
	return nil
}
