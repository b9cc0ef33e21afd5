package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"recipe-manager/feature/recipe"

	"go.uber.org/zap"
)

// MaintainerMismatchError reports that the upstream registry lists a
// maintainer outside the expected set for a package.
type MaintainerMismatchError struct {
	Package    string
	Maintainer string
	Expected   []string
}

func (e *MaintainerMismatchError) Error() string {
	return fmt.Sprintf("unexpected maintainer %q for package %s (expected one of %v)",
		e.Maintainer, e.Package, e.Expected)
}

// MaintainerSource resolves the current registry maintainer of a package.
type MaintainerSource interface {
	Maintainer(ctx context.Context, pkgbase string) (string, error)
}

// Refresher runs the external source-refresh step inside a recipe
// directory. For version-controlled packages this recomputes the true
// upstream version, so the reconciler re-checks release state afterwards.
type Refresher interface {
	Refresh(ctx context.Context, dir string) error
}

// Reconciler merges the locally maintained version/release markers of one
// recipe with the markers of an independently advancing upstream copy. Each
// phase takes the prior VersionState explicitly and returns the next; the
// only shared state is the recipe file itself.
type Reconciler struct {
	recipePath string
	cmp        Comparator
	refresher  Refresher
	log        *zap.Logger
}

// NewReconciler creates a reconciler for the recipe file at path. A nil
// comparator falls back to the built-in vercmp ordering.
func NewReconciler(recipePath string, cmp Comparator, refresher Refresher, log *zap.Logger) *Reconciler {
	if cmp == nil {
		cmp = DefaultComparator()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{recipePath: recipePath, cmp: cmp, refresher: refresher, log: log}
}

// relTag renders a release as the synthetic "1-<rel>" string fed to the
// comparator. The fixed epoch keeps the comparison confined to the release
// part.
func relTag(rel *recipe.ReleaseNumber) string {
	if rel == nil {
		return "1"
	}
	return "1-" + rel.String()
}

// BeforeFetch merges local state against the freshly fetched upstream
// snapshot. The caller captured local before overwriting the recipe tree;
// the recipe file now holds the upstream markers. When both sides build the
// same version, the higher release wins: a strictly lower local release
// leaves the fetched state untouched, anything else advances the fetched
// release to the next local one.
func (r *Reconciler) BeforeFetch(local recipe.VersionState) (recipe.VersionState, error) {
	remote, err := recipe.ReadVersionState(r.recipePath)
	if err != nil {
		return recipe.VersionState{}, err
	}

	if local.Version == "" || local.Version != remote.Version {
		// Different (or never-built) version: the fetched state stands.
		return remote, nil
	}

	if local.Release != nil && r.cmp.Compare(relTag(local.Release), relTag(remote.Release)) < 0 {
		r.log.Debug("upstream release supersedes local",
			zap.String("local", relTag(local.Release)),
			zap.String("remote", relTag(remote.Release)))
		return remote, nil
	}

	if local.Release == nil {
		// Nothing local to preserve.
		return remote, nil
	}

	next := local.Release.Next()
	if err := recipe.SetRelease(r.recipePath, &next); err != nil {
		return recipe.VersionState{}, err
	}
	r.log.Info("release bumped past local state", zap.String("pkgrel", next.String()))
	remote.Release = &next
	return remote, nil
}

// AfterRefresh runs the external source refresh and re-checks release state
// against it. BeforeFetch compared against pre-refresh data; when the
// refreshed tree still builds the local version, the release the local side
// would want next is forced if it orders strictly after the refreshed one.
func (r *Reconciler) AfterRefresh(ctx context.Context, local recipe.VersionState) (recipe.VersionState, error) {
	if r.refresher != nil {
		if err := r.refresher.Refresh(ctx, r.recipeDir()); err != nil {
			return recipe.VersionState{}, err
		}
	}

	current, err := recipe.ReadVersionState(r.recipePath)
	if err != nil {
		return recipe.VersionState{}, err
	}
	if local.Version == "" || local.Version != current.Version {
		return current, nil
	}

	wanted := recipe.ReleaseNumber{Major: 1}
	if local.Release != nil {
		wanted = local.Release.Next()
	}
	if r.cmp.Compare(relTag(&wanted), relTag(current.Release)) > 0 {
		if err := recipe.SetRelease(r.recipePath, &wanted); err != nil {
			return recipe.VersionState{}, err
		}
		r.log.Info("release corrected after source refresh", zap.String("pkgrel", wanted.String()))
		current.Release = &wanted
	}
	return current, nil
}

// CheckMaintainer verifies the registry maintainer of pkgbase against the
// expected set before anything is fetched. An empty expected set disables
// the check.
func CheckMaintainer(ctx context.Context, src MaintainerSource, pkgbase string, expected []string) error {
	if len(expected) == 0 {
		return nil
	}
	maintainer, err := src.Maintainer(ctx, pkgbase)
	if err != nil {
		return err
	}
	for _, want := range expected {
		if maintainer == want {
			return nil
		}
	}
	return &MaintainerMismatchError{Package: pkgbase, Maintainer: maintainer, Expected: expected}
}

func (r *Reconciler) recipeDir() string {
	return filepath.Dir(r.recipePath)
}
