package domain

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "ziparchive.build",
		Kind: KindArchiveWrite,
		Path: "/tmp/out.zip",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindArchiveWrite {
		t.Fatalf("expected kind %s", KindArchiveWrite)
	}
}

func TestOpErrorMatchesKindSentinel(t *testing.T) {
	err := fmt.Errorf("outer: %w", &OpError{Op: "fsbootstrap.ensure", Kind: KindFilesystem, Err: os.ErrPermission})

	if !errors.Is(err, ErrFilesystem) {
		t.Fatalf("expected ErrFilesystem to match")
	}
	if errors.Is(err, ErrArchiveWrite) {
		t.Fatalf("did not expect ErrArchiveWrite to match")
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Fatalf("expected underlying cause to match")
	}
}

func TestOpErrorMessageIncludesPath(t *testing.T) {
	err := &OpError{Op: "jsonfmt.format", Kind: KindInvalidJSON, Path: "a.json", Err: errors.New("boom")}
	msg := err.Error()
	for _, want := range []string{"jsonfmt.format", "invalid_json", "path=a.json", "boom"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	var nilErr *OpError
	if nilErr.Error() != "<nil>" {
		t.Fatalf("expected <nil> for nil receiver")
	}
}

func TestIsKind(t *testing.T) {
	err := &OpError{Op: "x", Kind: KindInvalidConfig}

	if !IsKind(err, KindInvalidConfig) {
		t.Fatalf("expected IsKind to match")
	}
	if IsKind(errors.New("plain"), KindInvalidConfig) {
		t.Fatalf("expected plain error not to match")
	}
}
