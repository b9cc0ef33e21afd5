package cmd

import (
	"context"
	"fmt"
	"os"

	"recipe-manager/core/config"
	"recipe-manager/core/database"
	"recipe-manager/core/gitcmd"
	"recipe-manager/core/logger"
	"recipe-manager/core/storage"
	"recipe-manager/feature/mirror"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// publishCmd pushes reconciled recipes to their per-package mirrors.
var publishCmd = &cobra.Command{
	Use:   "publish <pkgbase>...",
	Short: "Sync recipes into their mirrors and push guarded updates",
	Long: `Publish copies each package's tracked recipe files into its mirror
clone, regenerates the metadata document, and commits and pushes the result.

A diff classifier guards the push: fixed-version packages only publish
changes that touch more than the release counter, version-controlled
packages only publish changes that go beyond their ever-churning version
and release lines. Suppressed and unchanged runs leave the mirror
untouched.

One package failing does not stop the others; every outcome is recorded
in the publish journal when a journal database is configured.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPublish,
}

func init() {
	RootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	// The journal is an audit trail, not a prerequisite: run without it if
	// the database is unreachable.
	var journal *database.Journal
	if db, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Publish journal unavailable", zap.Error(err))
	} else if journal, err = database.NewJournal(db); err != nil {
		l.Warn("Publish journal migration failed", zap.Error(err))
		journal = nil
	}

	var archive *storage.Archive
	if cfg.Storage.Enabled {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		archive = storage.NewArchive(client, cfg.Storage, l)
	}

	gen := gitcmd.NewExecGenerator(cfg.Mirror.MetadataArgv(), os.Environ())
	pipeline := mirror.NewPipeline(cfg.Repo, cfg.Mirror, gen, journal, archive, l, os.Environ())

	failed := 0
	for _, pkgbase := range args {
		if err := pipeline.SyncAndPublish(ctx, pkgbase); err != nil {
			logger.WithPackage(l, pkgbase).Error("Publish failed", zap.Error(err))
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to publish", failed, len(args))
	}
	return nil
}
