package upstream

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"
)

// skipNames are registry bookkeeping files never extracted into the local
// recipe directory.
var skipNames = map[string]struct{}{
	".AURINFO":   {},
	".SRCINFO":   {},
	".gitignore": {},
}

// Client fetches recipe snapshots and maintainer info over HTTP.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates an upstream client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	return c.http.Do(req)
}

// Fetch downloads the snapshot tarball of pkgbase and extracts its files
// into destDir, flattening the leading archive directory. Registry
// bookkeeping files are skipped. The names of the written files are
// returned.
func (c *Client) Fetch(ctx context.Context, pkgbase, destDir string) ([]string, error) {
	url := fmt.Sprintf(c.cfg.SnapshotURL, pkgbase)
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, &FetchError{Package: pkgbase, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Package: pkgbase, Err: fmt.Errorf("snapshot %s returned status %d", url, resp.StatusCode)}
	}

	files, err := extractTarGz(resp.Body, destDir)
	if err != nil {
		return nil, &FetchError{Package: pkgbase, Err: err}
	}
	return files, nil
}

func extractTarGz(r io.Reader, destDir string) ([]string, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer gz.Close()

	var files []string
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		// Snapshot entries are <pkgbase>/<file>; drop the leading dir.
		name := path.Base(hdr.Name)
		if name == "." || name == "/" || path.Dir(hdr.Name) == "." {
			continue
		}
		if _, skip := skipNames[name]; skip {
			continue
		}

		dest := filepath.Join(destDir, name)
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(f, tr); err != nil {
			f.Close()
			return nil, err
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		files = append(files, name)
	}
	return files, nil
}

// rpcInfo mirrors the registry info response.
type rpcInfo struct {
	Results []struct {
		Maintainer string `json:"Maintainer"`
	} `json:"results"`
}

// Maintainer queries the registry RPC endpoint for the current maintainer
// of pkgbase.
func (c *Client) Maintainer(ctx context.Context, pkgbase string) (string, error) {
	url := fmt.Sprintf("%s?v=5&type=info&arg[]=%s", c.cfg.RPCURL, pkgbase)
	resp, err := c.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("registry info for %s returned status %d", pkgbase, resp.StatusCode)
	}

	var info rpcInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("failed to decode registry info: %w", err)
	}
	if len(info.Results) == 0 {
		return "", fmt.Errorf("package %s not found in registry", pkgbase)
	}
	return info.Results[0].Maintainer, nil
}
