package ports

import "github.com/aalvaropc/pwstasks/internal/domain"

// JSONFormatter rewrites a JSON document in place.
type JSONFormatter interface {
	FormatFile(path string) (domain.FormatResult, error)
}
