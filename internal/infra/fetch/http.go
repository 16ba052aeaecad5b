package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/aalvaropc/pwstasks/internal/infra/httpclient"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// HTTPFetcher downloads archives over http(s).
type HTTPFetcher struct {
	client *resty.Client
	logger *slog.Logger
}

type HTTPOption func(*HTTPFetcher)

func WithHTTPLogger(l *slog.Logger) HTTPOption {
	return func(f *HTTPFetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewHTTPFetcher(timeout time.Duration, opts ...HTTPOption) *HTTPFetcher {
	client := resty.NewWithClient(httpclient.New(httpclient.DefaultConfig()))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	f := &HTTPFetcher{client: client, logger: discardLogger()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.RemoteFetcher = (*HTTPFetcher)(nil)

func (f *HTTPFetcher) Fetch(ctx context.Context, url, destDir string) error {
	return install(ctx, f.logger, "fetch.http", url, destDir, func(ctx context.Context, dst string) error {
		res, err := f.client.R().
			SetContext(ctx).
			SetOutput(dst).
			Get(url)
		if err != nil {
			return err
		}
		if res.IsError() {
			_ = os.Remove(dst)
			return fmt.Errorf("unexpected status %s", res.Status())
		}
		f.logger.Debug("fetch.http.response", "url", url, "status", res.StatusCode(), "duration", res.Time())
		return nil
	})
}
