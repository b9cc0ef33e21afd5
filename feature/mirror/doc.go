// Package mirror keeps the externally hosted copy of each recipe in sync
// with the local recipe tree and decides when a regenerated recipe is worth
// publishing.
//
// # Publish guard
//
// The mirror diff is classified line by line before anything is committed:
// version-controlled packages churn pkgver/pkgrel on every build and fixed
// packages churn pkgrel, so diffs consisting solely of that bookkeeping are
// suppressed. See AllowPublish for the exact (intentionally asymmetric)
// policies.
//
// # Pipeline
//
// SyncAndPublish re-synchronizes the mirror clone to its remote head,
// replaces its tracked files with the recipe's (minus the special set),
// classifies the diff, regenerates the metadata document, and commits and
// pushes only when something meaningful changed. Every run is recorded in
// the publish journal and, when enabled, the published file set is
// archived to object storage.
//
// Failures of external tools inside the publish phase are caught once at
// the SyncAndPublish boundary and reported as *PublishError so a batch of
// packages survives any single package's failure.
package mirror
