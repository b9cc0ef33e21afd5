// Package upstream obtains the externally hosted copy of a recipe.
//
// The Fetcher interface is the boundary the reconciliation workflow sees:
// it overwrites a recipe directory with the upstream snapshot and resolves
// registry maintainer info. Client is the HTTP implementation (snapshot
// tarball download plus registry RPC); tests use the testify mock under
// mocks/.
//
// CleanTracked clears the tracked files of the local working tree before a
// snapshot lands, keeping the configured special files in place.
package upstream
