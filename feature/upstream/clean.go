package upstream

import (
	"context"
	"os"
	"path/filepath"

	"recipe-manager/core/gitcmd"

	"go.uber.org/zap"
)

// CleanTracked deletes every tracked file of the recipe working tree except
// the special set, making room for a fresh upstream snapshot. The removed
// paths are returned so the caller can drop them from the index once the
// snapshot is in place. Files already gone on disk are not an error.
func CleanTracked(ctx context.Context, run gitcmd.Runner, special map[string]struct{}, log *zap.Logger) ([]string, error) {
	files, err := run.LsFiles(ctx)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range files {
		if _, skip := special[f]; skip {
			continue
		}
		removed = append(removed, f)
		if err := os.Remove(filepath.Join(run.Dir, f)); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if log != nil {
			log.Debug("removed tracked file", zap.String("file", f))
		}
	}
	return removed, nil
}
