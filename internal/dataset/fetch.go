package dataset

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Fetcher downloads the public source datasets into the datasets directory.
// Downloads are rate limited so a full refresh stays polite to the open-data
// hosts.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher creates a Fetcher. A nil client uses http.DefaultClient.
func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

// Fetch downloads url into destDir under the given filename and returns the
// written path. Existing files are overwritten; a partial download never
// replaces a previous file because the body is streamed into a temp file
// first.
func (f *Fetcher) Fetch(ctx context.Context, url, destDir, filename string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "dataset: rate limit wait")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", eris.Wrapf(err, "dataset: create dir %s", destDir)
	}
	dest := filepath.Join(destDir, filename)

	log := zap.L().With(zap.String("component", "dataset.fetcher"))
	log.Info("downloading dataset", zap.String("url", url), zap.String("dest", dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "dataset: build request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "dataset: download %s", url)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("dataset: download %s returned status %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(destDir, filename+".part-*")
	if err != nil {
		return "", eris.Wrap(err, "dataset: create temp file")
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", eris.Wrapf(err, "dataset: write %s", dest)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", eris.Wrap(err, "dataset: close temp file")
	}
	if err := os.Rename(tmpName, dest); err != nil {
		_ = os.Remove(tmpName)
		return "", eris.Wrapf(err, "dataset: move into place %s", dest)
	}

	log.Info("dataset downloaded", zap.String("dest", dest))
	return dest, nil
}
