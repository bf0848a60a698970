package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"krimiwiki/internal/fileutil"
)

// maxPageBytes bounds a single downloaded page.
const maxPageBytes = 32 << 20

// HTTPFetcher downloads in-process.
type HTTPFetcher struct {
	userAgent  string
	httpClient *http.Client
	maxBytes   int64
}

var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher using net/http. A nil client gets a
// default one with the given timeout.
func NewHTTPFetcher(userAgent string, timeout time.Duration, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPFetcher{userAgent: strings.TrimSpace(userAgent), httpClient: client, maxBytes: maxPageBytes}
}

// Fetch downloads url and writes it atomically to dest.
func (f *HTTPFetcher) Fetch(ctx context.Context, url, dest string) error {
	if dest == "" {
		return errors.New("destination file required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > f.maxBytes {
		return fmt.Errorf("get %s: page larger than %d bytes", url, f.maxBytes)
	}
	return fileutil.WriteFileAtomic(dest, data, 0o644)
}
