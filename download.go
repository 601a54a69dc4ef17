package jgd

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// downloadMu serializes source downloads and extraction.
var downloadMu sync.Mutex

// fetchParSources makes sure every source's .par file exists in the data
// directory, downloading and unpacking the ones that have a URL. Sources
// without a URL must be placed there by hand (see grid-data/SOURCES).
// Thread-safe: a mutex prevents concurrent downloads corrupting files.
func fetchParSources(cfg *updateConfig) error {
	downloadMu.Lock()
	defer downloadMu.Unlock()

	if err := os.MkdirAll(cfg.dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	for _, src := range cfg.sources {
		parPath := filepath.Join(cfg.dataDir, src.Par)
		// Re-check existence inside the lock (another goroutine may have
		// fetched the file already).
		if _, err := os.Stat(parPath); err == nil {
			continue
		}
		if src.URL == "" {
			return fmt.Errorf("par source %s missing: place %s in %s or configure a url (GSI serves the file behind a download page, see grid-data/SOURCES)",
				src.Name, src.Par, cfg.dataDir)
		}
		if err := fetchParSource(src, parPath); err != nil {
			return fmt.Errorf("fetching %s: %w", src.Name, err)
		}
	}
	return nil
}

func fetchParSource(src GridSource, parPath string) error {
	if !strings.HasSuffix(src.URL, ".zip") {
		return downloadFile(src.URL, parPath)
	}
	zipPath := parPath + ".zip"
	if err := downloadFile(src.URL, zipPath); err != nil {
		return err
	}
	return extractZipMember(zipPath, src.Par, parPath)
}

// httpClient is a shared HTTP client with reasonable timeouts.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

func downloadFile(url, path string) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP GET %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}

	// Track success so the deferred cleanup removes partial files on error
	// and Close errors on the success path are not lost.
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(path) // best-effort cleanup of partial file
		}
	}()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", path, err)
	}
	success = true
	return nil
}

// extractZipMember writes the named archive member to dest. The member is
// matched on its base name, so archives that nest the .par under a
// directory still work.
func extractZipMember(zipPath, member, dest string) error {
	rz, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening zip file: %w", err)
	}
	defer rz.Close()

	for _, zf := range rz.File {
		if filepath.Base(zf.Name) != member {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return fmt.Errorf("opening zip member %s: %w", zf.Name, err)
		}
		defer rc.Close()

		out, err := os.Create(dest)
		if err != nil {
			return fmt.Errorf("creating file %s: %w", dest, err)
		}
		success := false
		defer func() {
			out.Close()
			if !success {
				os.Remove(dest)
			}
		}()

		if _, err := io.Copy(out, rc); err != nil {
			return fmt.Errorf("extracting %s: %w", member, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("closing file %s: %w", dest, err)
		}
		success = true
		return nil
	}
	return fmt.Errorf("%s has no member named %s", zipPath, member)
}
