package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"recipe-manager/core/config"
	"recipe-manager/core/gitcmd"
	"recipe-manager/core/logger"
	"recipe-manager/feature/recipe"
	"recipe-manager/feature/recipe/reconcile"
	"recipe-manager/feature/upstream"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the update command
	expectedMaintainers []string
	forceRefresh        bool
	skipRefresh         bool
)

// updateCmd refreshes local recipes from the upstream registry.
var updateCmd = &cobra.Command{
	Use:   "update <pkgbase>...",
	Short: "Fetch upstream recipe snapshots and reconcile release state",
	Long: `Update downloads the upstream snapshot of each package into its local
recipe directory and merges the version and release markers so local-only
rebuilds are never lost.

Version-controlled packages (pkgbase ending in -git, -hg, -svn or -bzr)
additionally run the source refresh step so the real upstream version is
known before release state is settled.

Examples:
  # Update one package
  update tinygo

  # Update several, enforcing the registry maintainer
  update tinygo yay --maintainer someone`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringSliceVar(&expectedMaintainers, "maintainer", nil, "Expected registry maintainer(s); mismatch aborts the package")
	updateCmd.Flags().BoolVar(&forceRefresh, "refresh", false, "Run the source refresh step for every package")
	updateCmd.Flags().BoolVar(&skipRefresh, "no-refresh", false, "Skip the source refresh step even for version-controlled packages")

	RootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	client := upstream.NewClient(cfg.Upstream)
	special := cfg.Repo.SpecialSet()

	failed := 0
	for _, pkgbase := range args {
		log := logger.WithPackage(l, pkgbase)
		if err := updatePackage(ctx, cfg, client, special, pkgbase, log); err != nil {
			var mismatch *reconcile.MaintainerMismatchError
			if errors.As(err, &mismatch) {
				log.Error("Maintainer check failed", zap.String("maintainer", mismatch.Maintainer))
			} else {
				log.Error("Update failed", zap.Error(err))
			}
			failed++
			continue
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to update", failed, len(args))
	}
	return nil
}

func updatePackage(ctx context.Context, cfg *config.Config, fetcher upstream.Fetcher,
	special map[string]struct{}, pkgbase string, log *zap.Logger) error {
	recipeDir := filepath.Join(cfg.Repo.Root, pkgbase)
	recipePath := filepath.Join(recipeDir, cfg.Repo.File)

	if err := reconcile.CheckMaintainer(ctx, fetcher, pkgbase, expectedMaintainers); err != nil {
		return err
	}

	// Capture local state before the snapshot overwrites the recipe.
	local, err := recipe.ReadVersionState(recipePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(recipeDir, 0o755); err != nil {
		return err
	}
	run := gitcmd.Runner{Dir: recipeDir, Env: os.Environ()}

	removed, err := upstream.CleanTracked(ctx, run, special, log)
	if err != nil {
		return err
	}

	fetched, err := fetcher.Fetch(ctx, pkgbase, recipeDir)
	if err != nil {
		return err
	}
	log.Info("Fetched upstream snapshot", zap.Int("files", len(fetched)))

	var refresher reconcile.Refresher
	if needsRefresh(pkgbase) {
		refresher = reconcile.NewExecRefresher(nil, os.Environ())
	}
	rec := reconcile.NewReconciler(recipePath, nil, refresher, log)

	state, err := rec.BeforeFetch(local)
	if err != nil {
		return err
	}
	if refresher != nil {
		if state, err = rec.AfterRefresh(ctx, local); err != nil {
			return err
		}
	}

	// Stage the new tree: fetched files replace whatever was tracked, and
	// files the snapshot no longer ships leave the index.
	stillTracked := make(map[string]struct{}, len(fetched))
	for _, name := range fetched {
		stillTracked[name] = struct{}{}
	}
	var gone []string
	for _, name := range removed {
		if _, ok := stillTracked[name]; !ok {
			gone = append(gone, name)
		}
	}
	if len(gone) > 0 {
		if err := run.RmCached(ctx, gone); err != nil {
			return err
		}
	}
	if err := run.AddFiles(ctx, fetched, true); err != nil {
		return err
	}

	log.Info("Recipe updated", zap.String("version", recipe.FormatVersion(state)))
	return nil
}

// needsRefresh reports whether the source refresh step should run, either
// forced by flag or implied by the package class.
func needsRefresh(pkgbase string) bool {
	if skipRefresh {
		return false
	}
	if forceRefresh {
		return true
	}
	return recipe.Class(pkgbase) == recipe.ClassVersionControlled
}
