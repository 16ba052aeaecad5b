// Package fetch installs remote zip archives into local directories.
//
// Every fetcher follows the same sequence: download to a temporary archive
// inside the destination, extract it there, remove the temporary archive.
// The temporary archive is removed on every exit path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"
	"github.com/mholt/archiver/v3"

	"github.com/aalvaropc/pwstasks/internal/domain"
)

type downloadFunc func(ctx context.Context, dst string) error

func install(ctx context.Context, logger *slog.Logger, op, rawURL, destDir string, download downloadFunc) error {
	if strings.TrimSpace(rawURL) == "" {
		return &domain.OpError{Op: op, Kind: domain.KindInvalidConfig, Err: fmt.Errorf("url is required")}
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindFilesystem, Path: destDir, Err: err}
	}

	tmp := filepath.Join(destDir, ".fetch-"+uuid.NewString()+".zip")
	defer func() { _ = os.Remove(tmp) }()

	logger.Info("fetch.download", "url", rawURL, "tmp", tmp)
	if err := download(ctx, tmp); err != nil {
		return &domain.OpError{Op: op, Kind: domain.KindFetch, Path: rawURL, Err: err}
	}

	n, err := Extract(tmp, destDir)
	if err != nil {
		return &domain.OpError{Op: op + ".extract", Kind: domain.KindFetch, Path: destDir, Err: err}
	}
	logger.Info("fetch.extracted", "url", rawURL, "dest", destDir, "files", n)
	return nil
}

// Extract unpacks the zip at archivePath into destDir, replacing files that
// already exist. Entries that would land outside destDir, and symlink
// entries, are rejected before anything is written.
func Extract(archivePath, destDir string) (int, error) {
	z := archiver.NewZip()
	z.OverwriteExisting = true
	z.MkdirAll = true

	files := 0
	err := z.Walk(archivePath, func(f archiver.File) error {
		name := f.Name()
		if zh, ok := f.Header.(zip.FileHeader); ok {
			name = zh.Name
		}
		if !within(destDir, name) {
			return fmt.Errorf("illegal entry %q escapes %s", name, destDir)
		}
		if f.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf("illegal symlink entry %q", name)
		}
		if !f.IsDir() {
			files++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := z.Unarchive(archivePath, destDir); err != nil {
		return 0, err
	}
	return files, nil
}

func within(destDir, name string) bool {
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return false
	}
	target := filepath.Join(destDir, filepath.FromSlash(name))
	rel, err := filepath.Rel(destDir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyToFile(dst string, r io.Reader) error {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
