package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"recipe-manager/core/config"
	"recipe-manager/core/database"
	"recipe-manager/feature/recipe"

	"github.com/spf13/cobra"
)

var historyLimit int

// showCmd prints the current state of a recipe.
var showCmd = &cobra.Command{
	Use:   "show <pkgbase>",
	Short: "Show the version state and publish history of a recipe",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&historyLimit, "history", 5, "Number of journal entries to show (0 disables)")

	RootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	pkgbase := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	recipePath := filepath.Join(cfg.Repo.Root, pkgbase, cfg.Repo.File)
	state, err := recipe.ReadVersionState(recipePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", recipePath, err)
	}

	fmt.Printf("Package: %s\n", pkgbase)
	fmt.Printf("Class:   %s\n", recipe.Class(pkgbase))
	if state.Version == "" {
		fmt.Println("Version: (no recipe found)")
	} else {
		fmt.Printf("Version: %s\n", recipe.FormatVersion(state))
		if state.Release == nil {
			fmt.Println("Release: (never built)")
		}
	}

	if historyLimit <= 0 {
		return nil
	}

	// History is best effort; a missing journal is not an error here.
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil
	}
	journal, err := database.NewJournal(db)
	if err != nil {
		return nil
	}
	recs, err := journal.History(ctx, pkgbase, historyLimit)
	if err != nil || len(recs) == 0 {
		return nil
	}

	fmt.Println("\nRecent publishes:")
	for _, rec := range recs {
		line := fmt.Sprintf("  %s  %-10s %s", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Outcome, rec.Version)
		if rec.Release != "" {
			line += "-" + rec.Release
		}
		if rec.Error != "" {
			line += "  (" + strings.SplitN(rec.Error, "\n", 2)[0] + ")"
		}
		fmt.Println(line)
	}
	return nil
}
