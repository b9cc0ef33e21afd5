// Package storage archives published package snapshots in object storage.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the archive needs: bucket management, uploads, listing and
// removal. This abstraction supports both AWS S3 and self-hosted MinIO
// instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Archive
//
// The Archive keys every uploaded file as <pkgbase>/<version>/<file>, so
// each published version of a package remains retrievable after the mirror
// has moved on.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	archive := storage.NewArchive(client, cfg.Storage, log)
//	err = archive.Store(ctx, "tinygo", "0.33.0-1", dir, files)
package storage
