package scraper

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/filesystem"
)

// PartialSuffix marks a download that has not replaced its target yet.
const PartialSuffix = ".tmp"

// Fetch downloads the script at remoteURL into localPath.
// The local file is replaced atomically and only when the content differs; changed reports whether it was.
func Fetch(ctx context.Context, client *http.Client, remoteURL, localPath string) (changed bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch %s: %s", remoteURL, resp.Status)
	}

	remote, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	fs := filesystem.API()
	if local, err := fs.ReadFile(localPath); err == nil && sha256.Sum256(local) == sha256.Sum256(remote) {
		return false, nil
	}

	tmpPath := localPath + PartialSuffix
	if err := fs.WriteFile(tmpPath, remote, 0644); err != nil {
		return false, err
	}

	if err := fs.Rename(tmpPath, localPath); err != nil {
		_ = fs.Remove(tmpPath)
		return false, err
	}

	return true, nil
}

// Clean removes the partial downloads left in dir by interrupted fetches.
func Clean(dir string) (removed int, err error) {
	fs := filesystem.API()
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PartialSuffix) {
			continue
		}
		if err := fs.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}
