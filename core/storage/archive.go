package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Archive stores snapshots of published packages in object storage.
// Objects are keyed <pkgbase>/<version>/<file> so every published
// version remains retrievable.
type Archive struct {
	client Client
	bucket string
	region string
	log    *zap.Logger
}

// NewArchive returns an archive writing to the configured bucket.
func NewArchive(client Client, cfg Config, log *zap.Logger) *Archive {
	return &Archive{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		log:    log,
	}
}

// Store uploads the named files from dir under <pkgbase>/<version>/.
// The bucket is created on first use.
func (a *Archive) Store(ctx context.Context, pkgbase, version, dir string, files []string) error {
	if err := a.ensureBucket(ctx); err != nil {
		return err
	}

	for _, name := range files {
		src := filepath.Join(dir, name)
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", src, err)
		}

		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", src, err)
		}

		key := path.Join(pkgbase, version, name)
		_, err = a.client.PutObject(ctx, a.bucket, key, f, info.Size(), minio.PutObjectOptions{
			ContentType: "application/octet-stream",
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", key, err)
		}

		a.log.Debug("Archived file", zap.String("bucket", a.bucket), zap.String("key", key))
	}

	return nil
}

// Versions lists the archived version strings for a package, derived
// from the object key prefix.
func (a *Archive) Versions(ctx context.Context, pkgbase string) ([]string, error) {
	seen := make(map[string]bool)
	var versions []string

	prefix := pkgbase + "/"
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		rest := strings.TrimPrefix(obj.Key, prefix)
		version, _, found := strings.Cut(rest, "/")
		if found && !seen[version] {
			seen[version] = true
			versions = append(versions, version)
		}
	}

	return versions, nil
}

// Delete removes all archived files of one version of a package.
func (a *Archive) Delete(ctx context.Context, pkgbase, version string) error {
	prefix := path.Join(pkgbase, version) + "/"
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if err := a.client.RemoveObject(ctx, a.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", obj.Key, err)
		}
	}
	return nil
}

func (a *Archive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", a.bucket, err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", a.bucket, err)
	}
	a.log.Info("Created archive bucket", zap.String("bucket", a.bucket))
	return nil
}
