package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/aalvaropc/pwstasks/internal/ports"
)

// BlobFetcher reads archives from a gocloud bucket (file://, mem://, and any
// other driver registered by the binary, such as s3:// or gs://).
type BlobFetcher struct {
	logger *slog.Logger
}

func NewBlobFetcher(logger *slog.Logger) *BlobFetcher {
	if logger == nil {
		logger = discardLogger()
	}
	return &BlobFetcher{logger: logger}
}

var _ ports.RemoteFetcher = (*BlobFetcher)(nil)

func (f *BlobFetcher) Fetch(ctx context.Context, rawURL, destDir string) error {
	return install(ctx, f.logger, "fetch.blob", rawURL, destDir, func(ctx context.Context, dst string) error {
		bucketURL, key, err := splitBlobURL(rawURL)
		if err != nil {
			return err
		}

		bkt, err := blob.OpenBucket(ctx, bucketURL)
		if err != nil {
			return err
		}
		defer bkt.Close()

		r, err := bkt.NewReader(ctx, key, nil)
		if err != nil {
			return err
		}
		defer r.Close()

		f.logger.Debug("fetch.blob.reader", "bucket", bucketURL, "key", key, "size", r.Size())
		return copyToFile(dst, r)
	})
}

// splitBlobURL turns an object URL into a bucket URL and key. For file://
// the bucket is the containing directory; for the other schemes it is the
// host and the key is the full path.
func splitBlobURL(rawURL string) (string, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	if u.Scheme == "" {
		return "", "", fmt.Errorf("blob url %q has no scheme", rawURL)
	}

	if u.Scheme == "file" {
		dir, key := path.Split(u.Path)
		if key == "" {
			return "", "", fmt.Errorf("blob url %q has no object key", rawURL)
		}
		b := url.URL{Scheme: u.Scheme, Path: strings.TrimSuffix(dir, "/"), RawQuery: u.RawQuery}
		if b.Path == "" {
			b.Path = "/"
		}
		return b.String(), key, nil
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", "", fmt.Errorf("blob url %q has no object key", rawURL)
	}
	b := url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
	return b.String(), key, nil
}
