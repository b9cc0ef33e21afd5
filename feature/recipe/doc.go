// Package recipe implements surgical edits and reads of package recipe
// files (PKGBUILD-style line-oriented build scripts).
//
// The recipe is treated as an ordered sequence of lines: every edit
// rewrites exactly the lines it targets and leaves everything else verbatim,
// so hand-maintained content survives automated updates.
//
// # Components
//
//   - Rewrite: the generic line-transforming primitive all edits build on.
//   - AddToArrayField (and the AddArch/AddDepends/... wrappers): set-union
//     insertion into single-line array-literal assignments. Output token
//     order is always the sorted union, which makes repeated application a
//     no-op and keeps mirror diffs stable.
//   - ReadVersionState / SetRelease / UpdateVersion: the pkgver/pkgrel
//     markers and their in-place rewriting.
//   - ReleaseNumber: the rebuild counter, either a plain integer or a
//     dotted sub-release ("3.2"); Next discards the fraction.
//   - Class: fixed vs version-controlled packages by name suffix.
//
// All functions take explicit file paths; nothing depends on the process
// working directory.
package recipe
