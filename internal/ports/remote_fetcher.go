package ports

import "context"

// RemoteFetcher retrieves the archive at url, extracts it into destDir and
// removes the downloaded archive. The url is passed through untouched.
type RemoteFetcher interface {
	Fetch(ctx context.Context, url, destDir string) error
}
