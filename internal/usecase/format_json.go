package usecase

import (
	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

type FormatJSON struct {
	formatter ports.JSONFormatter
}

func NewFormatJSON(f ports.JSONFormatter) *FormatJSON {
	return &FormatJSON{formatter: f}
}

// Execute formats each file in order and stops at the first failure. Results
// for files already processed are returned alongside the error.
func (uc *FormatJSON) Execute(paths []string) ([]domain.FormatResult, error) {
	results := make([]domain.FormatResult, 0, len(paths))
	for _, p := range paths {
		res, err := uc.formatter.FormatFile(p)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
