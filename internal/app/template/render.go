package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/domain"
)

// RenderString replaces {{VAR}} placeholders with vars values.
// It returns an error if a variable is missing or a placeholder is malformed.
func RenderString(input string, vars map[string]string) (string, error) {
	if input == "" {
		return "", nil
	}

	var out strings.Builder
	rest := input
	for {
		start := strings.Index(rest, "{{")
		if start == -1 {
			out.WriteString(rest)
			return out.String(), nil
		}

		out.WriteString(rest[:start])
		rest = rest[start+2:]

		end := strings.Index(rest, "}}")
		if end == -1 {
			return "", renderError(input, errors.New("unclosed template expression"))
		}

		key := strings.TrimSpace(rest[:end])
		if key == "" {
			return "", renderError(input, errors.New("empty template expression"))
		}

		value, ok := vars[key]
		if !ok {
			return "", renderError(input, fmt.Errorf("unknown placeholder %q", key))
		}

		out.WriteString(value)
		rest = rest[end+2:]
	}
}

// RenderAll renders every element of args.
func RenderAll(args []string, vars map[string]string) ([]string, error) {
	out := make([]string, len(args))
	for i, a := range args {
		r, err := RenderString(a, vars)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func renderError(input string, err error) error {
	return &domain.OpError{
		Op:   "template.render",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("%q: %w", input, err),
	}
}
