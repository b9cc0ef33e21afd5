// Package gitcmd wraps the external version-control and metadata tools that
// recipe-manager drives.
//
// Every invocation goes through a Runner carrying an explicit working
// directory and environment. Nothing in this package (or its callers)
// changes the process-global working directory: two packages being
// processed back to back never observe each other's state through implicit
// globals.
//
// # Failure model
//
// A non-zero exit surfaces as a *ToolError capturing the command line, the
// directory and the tool's stderr. Callers either propagate it directly
// (recipe edits) or catch it once at the publish boundary (mirror sync) and
// convert it to a reported failure.
//
// # Operations
//
//   - Clone / ResetHard / Pull: mirror working-copy lifecycle.
//   - LsFiles / Diff / DiffIndexQuietHead: inspection of tracked state.
//   - AddAll / AddFiles / RmCached / Commit / CommitIfChanged / Push: publishing.
//   - MetadataGenerator: derived-metadata document generation (.SRCINFO style).
package gitcmd
