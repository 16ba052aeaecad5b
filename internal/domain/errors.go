package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrFilesystem        = errors.New("filesystem error")
	ErrArchiveWrite      = errors.New("archive write error")
	ErrFetch             = errors.New("fetch error")
	ErrInvalidJSON       = errors.New("invalid json")
	ErrDestinationExists = errors.New("destination already exists")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
	KindFilesystem    ErrorKind = "filesystem"
	KindArchiveWrite  ErrorKind = "archive_write"
	KindFetch         ErrorKind = "fetch"
	KindInvalidJSON   ErrorKind = "invalid_json"
)

var kindSentinels = map[ErrorKind]error{
	KindNotFound:      ErrNotFound,
	KindInvalidConfig: ErrInvalidConfig,
	KindFilesystem:    ErrFilesystem,
	KindArchiveWrite:  ErrArchiveWrite,
	KindFetch:         ErrFetch,
	KindInvalidJSON:   ErrInvalidJSON,
}

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, ErrArchiveWrite) and friends match on the kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
