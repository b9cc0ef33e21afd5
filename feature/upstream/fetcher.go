package upstream

import (
	"context"
	"fmt"
)

// Fetcher obtains the upstream copy of a recipe. Implementations own the
// transport mechanics (HTTP, archive extraction); the pipeline only sees
// the file set written into the destination directory.
type Fetcher interface {
	// Fetch overwrites destDir with the upstream snapshot of pkgbase and
	// returns the names of the files written.
	Fetch(ctx context.Context, pkgbase, destDir string) ([]string, error)
	// Maintainer resolves the current registry maintainer of pkgbase.
	Maintainer(ctx context.Context, pkgbase string) (string, error)
}

// FetchError reports that the upstream snapshot of a package was
// unavailable. It carries the package name so a batch orchestrator can skip
// just that package.
type FetchError struct {
	Package string
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch upstream snapshot for %s: %v", e.Package, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
