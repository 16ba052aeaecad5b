package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// Router sends http(s) URLs to one fetcher and everything else to another.
type Router struct {
	HTTP  ports.RemoteFetcher
	Other ports.RemoteFetcher
}

var _ ports.RemoteFetcher = (*Router)(nil)

func (r *Router) Fetch(ctx context.Context, rawURL, destDir string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &domain.OpError{Op: "fetch.route", Kind: domain.KindInvalidConfig, Path: rawURL, Err: err}
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return r.HTTP.Fetch(ctx, rawURL, destDir)
	default:
		return r.Other.Fetch(ctx, rawURL, destDir)
	}
}

// New builds the fetcher selected by cfg.Mechanism.
func New(cfg domain.FetchConfig, logger *slog.Logger) (ports.RemoteFetcher, error) {
	if logger == nil {
		logger = discardLogger()
	}
	switch cfg.Mechanism {
	case domain.FetchHTTP:
		return NewHTTPFetcher(cfg.Timeout, WithHTTPLogger(logger)), nil
	case domain.FetchBlob:
		return NewBlobFetcher(logger), nil
	case domain.FetchCommand:
		return NewCommandFetcher(cfg.Command, cfg.Args, logger), nil
	case domain.FetchAuto, "":
		return &Router{
			HTTP:  NewHTTPFetcher(cfg.Timeout, WithHTTPLogger(logger)),
			Other: NewBlobFetcher(logger),
		}, nil
	default:
		return nil, &domain.OpError{
			Op:   "fetch.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown fetch mechanism %q", cfg.Mechanism),
		}
	}
}
