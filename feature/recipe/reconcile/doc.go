// Package reconcile merges two independently advancing version histories of
// one recipe: the local rebuild counter and the counter of the upstream
// copy the recipe is fetched from.
//
// # Two-phase workflow
//
// Phase 1 (BeforeFetch) runs right after the caller overwrote the recipe
// tree with the upstream snapshot: when both sides build the same pkgver,
// the higher pkgrel wins, and a local release that is not strictly behind
// advances past itself (ReleaseNumber.Next) so a rebuild is forced.
//
// Phase 2 (AfterRefresh) is needed because phase 1 compared against
// pre-refresh data: for version-controlled packages the source refresh may
// recompute pkgver, and when it still matches the local version the release
// the local side would want next is forced if it orders after the refreshed
// one.
//
// Both phases take the prior VersionState explicitly and return the next
// one; no state is carried through process globals.
//
// # Ordering
//
// Release ordering is delegated to a Comparator over synthetic
// "1-<release>" strings. DefaultComparator implements the alpm vercmp total
// order in pure Go; tools that prefer the system's comparison can supply
// their own implementation.
package reconcile
