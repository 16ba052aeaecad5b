package usecase

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// InstallInputData downloads the published input archive into the input
// directory and reports what ended up there.
type InstallInputData struct {
	fetcher ports.RemoteFetcher
}

func NewInstallInputData(f ports.RemoteFetcher) *InstallInputData {
	return &InstallInputData{fetcher: f}
}

func (uc *InstallInputData) Execute(ctx context.Context, url, destDir string, timeout time.Duration) ([]domain.InstalledFile, error) {
	if strings.TrimSpace(url) == "" {
		return nil, &domain.OpError{
			Op:   "usecase.install_input",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("input data url is empty (set fetch.input_data_url or pass --url)"),
		}
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := uc.fetcher.Fetch(ctx, url, destDir); err != nil {
		return nil, err
	}
	return ListFiles(destDir)
}

// ListFiles returns the regular files under dir, relative and sorted.
func ListFiles(dir string) ([]domain.InstalledFile, error) {
	var out []domain.InstalledFile
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		out = append(out, domain.InstalledFile{Path: filepath.ToSlash(rel), Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, &domain.OpError{Op: "usecase.list_files", Kind: domain.KindFilesystem, Path: dir, Err: err}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}
