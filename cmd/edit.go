package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"recipe-manager/core/config"
	"recipe-manager/core/logger"
	"recipe-manager/feature/recipe"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// arrayFields are the recipe assignments the edit command may extend.
var arrayFields = map[string]struct{}{
	"arch":         {},
	"depends":      {},
	"makedepends":  {},
	"checkdepends": {},
	"optdepends":   {},
	"conflicts":    {},
	"replaces":     {},
	"provides":     {},
	"groups":       {},
}

// editCmd adds values to an array-valued recipe field.
var editCmd = &cobra.Command{
	Use:   "edit <pkgbase> <field> <value>...",
	Short: "Add values to an array field of a recipe",
	Long: `Edit merges the given values into an array-valued assignment of the
package's recipe file. Existing values are kept, duplicates collapse, and
the result is written back sorted and single-quoted. A missing field is
appended to the end of the file.

Examples:
  # Add build dependencies
  edit tinygo makedepends go llvm

  # Allow another architecture
  edit tinygo arch aarch64`,
	Args: cobra.MinimumNArgs(3),
	RunE: runEdit,
}

func init() {
	RootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	pkgbase, field, values := args[0], args[1], args[2:]

	if _, ok := arrayFields[field]; !ok {
		known := make([]string, 0, len(arrayFields))
		for name := range arrayFields {
			known = append(known, name)
		}
		sort.Strings(known)
		return fmt.Errorf("unknown array field %q (known: %s)", field, strings.Join(known, ", "))
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	recipePath := filepath.Join(cfg.Repo.Root, pkgbase, cfg.Repo.File)
	if err := recipe.AddToArrayField(recipePath, field, values); err != nil {
		return fmt.Errorf("failed to edit %s: %w", recipePath, err)
	}

	logger.WithPackage(l, pkgbase).Info("Field extended",
		zap.String("field", field),
		zap.Strings("values", values),
	)
	return nil
}
