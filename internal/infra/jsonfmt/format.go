// Package jsonfmt rewrites JSON documents with a fixed layout so that data
// files produce readable textual diffs.
//
// The layout is four-space indentation with ", " between items and ": "
// between keys and values. Key order, duplicate keys, number literals and
// string literals (escapes included) are kept exactly as read.
package jsonfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

const (
	indentUnit    = "    "
	itemSeparator = ", "
	keySeparator  = ": "
)

// Format returns data re-laid out. The result has no trailing newline.
func Format(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	f := &formatter{dec: dec, data: data}
	tok, err := f.token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, err
	}
	if err := f.value(tok, 0); err != nil {
		return nil, err
	}

	if _, err := f.token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, err
	}
	return f.out.Bytes(), nil
}

type formatter struct {
	dec  *json.Decoder
	data []byte
	out  bytes.Buffer
	// raw is the source text of the last token read.
	raw []byte
}

func (f *formatter) token() (json.Token, error) {
	start := f.dec.InputOffset()
	tok, err := f.dec.Token()
	if err != nil {
		return tok, err
	}
	f.raw = bytes.TrimLeft(f.data[start:f.dec.InputOffset()], " \t\r\n,:")
	return tok, nil
}

func (f *formatter) value(tok json.Token, depth int) error {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return f.container(depth, '}', true)
		case '[':
			return f.container(depth, ']', false)
		default:
			return fmt.Errorf("unexpected delimiter %q", v)
		}
	case string:
		f.str()
	case json.Number:
		f.out.WriteString(v.String())
	case bool:
		if v {
			f.out.WriteString("true")
		} else {
			f.out.WriteString("false")
		}
	case nil:
		f.out.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %T", tok)
	}
	return nil
}

func (f *formatter) container(depth int, closing json.Delim, object bool) error {
	open, empty := "[", "[]"
	if object {
		open, empty = "{", "{}"
	}

	if !f.dec.More() {
		if _, err := f.token(); err != nil {
			return err
		}
		f.out.WriteString(empty)
		return nil
	}

	inner := strings.Repeat(indentUnit, depth+1)
	f.out.WriteString(open)
	for first := true; f.dec.More(); first = false {
		if !first {
			f.out.WriteString(itemSeparator)
		}
		f.out.WriteByte('\n')
		f.out.WriteString(inner)

		if object {
			key, err := f.token()
			if err != nil {
				return err
			}
			if _, ok := key.(string); !ok {
				return fmt.Errorf("object key must be a string, got %T", key)
			}
			f.str()
			f.out.WriteString(keySeparator)
		}

		tok, err := f.token()
		if err != nil {
			return err
		}
		if err := f.value(tok, depth+1); err != nil {
			return err
		}
	}

	end, err := f.token()
	if err != nil {
		return err
	}
	if end != closing {
		return fmt.Errorf("expected %q, got %v", closing, end)
	}
	f.out.WriteByte('\n')
	f.out.WriteString(strings.Repeat(indentUnit, depth))
	f.out.WriteString(string(closing))
	return nil
}

// str copies the string literal as written so escapes the decoder would
// normalize (lone surrogates, invalid UTF-8) survive unchanged.
func (f *formatter) str() {
	f.out.Write(f.raw)
}

// Formatter applies Format to files on disk.
type Formatter struct {
	logger *slog.Logger
}

type Option func(*Formatter)

func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) {
		if l != nil {
			f.logger = l
		}
	}
}

func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{logger: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ ports.JSONFormatter = (*Formatter)(nil)

// FormatFile rewrites path in place. Invalid documents are left untouched.
func (f *Formatter) FormatFile(path string) (domain.FormatResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.read", Kind: domain.KindFilesystem, Path: path, Err: err}
	}
	in, err := os.ReadFile(path)
	if err != nil {
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.read", Kind: domain.KindFilesystem, Path: path, Err: err}
	}

	out, err := Format(in)
	if err != nil {
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.format", Kind: domain.KindInvalidJSON, Path: path, Err: err}
	}

	res := domain.FormatResult{Path: path, Changed: !bytes.Equal(in, out), Bytes: len(out)}
	if !res.Changed {
		f.logger.Debug("jsonfmt.unchanged", "path", path)
		return res, nil
	}

	// Atomic-ish write: tmp then rename.
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.write", Kind: domain.KindFilesystem, Path: path, Err: err}
	}
	_, werr := tmp.Write(out)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Chmod(tmp.Name(), info.Mode().Perm())
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), path)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.write", Kind: domain.KindFilesystem, Path: path, Err: werr}
	}

	f.logger.Info("jsonfmt.rewritten", "path", path, "bytes", len(out))
	return res, nil
}
