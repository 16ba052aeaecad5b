package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/infra/config"
	"github.com/aalvaropc/pwstasks/internal/infra/fsbootstrap"
	"github.com/aalvaropc/pwstasks/internal/infra/logger"
	"github.com/aalvaropc/pwstasks/internal/infra/workspacefinder"
	"github.com/aalvaropc/pwstasks/internal/usecase"
)

type workspaceCtx struct {
	root    string
	cfg     domain.Config
	logger  *slog.Logger
	cleanup func() error
}

func (ws *workspaceCtx) Close() {
	if ws.cleanup != nil {
		_ = ws.cleanup()
	}
}

// openWorkspace resolves the root, loads its config and starts the log file.
func openWorkspace(opts *rootOptions) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(opts.workspace)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewLoader(nil).Load(root)
	if err != nil {
		return nil, err
	}

	cleanup, lerr := logger.Setup(logger.Config{
		Root:  root,
		Dir:   cfg.Paths.LogsDir,
		Debug: opts.debug,
	})
	if lerr != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", lerr)
	}

	l := logger.L()
	l.Debug("workspace.opened", "root", root)

	return &workspaceCtx{root: root, cfg: cfg, logger: l, cleanup: cleanup}, nil
}

// prepareWorkspace opens the workspace and makes sure its directories exist.
// Every task command goes through here before doing its own work.
func prepareWorkspace(opts *rootOptions, gitignore bool) (*workspaceCtx, domain.DirectorySet, error) {
	ws, err := openWorkspace(opts)
	if err != nil {
		return nil, nil, err
	}

	bopts := []fsbootstrap.Option{fsbootstrap.WithLogger(ws.logger)}
	if gitignore {
		entries := fsbootstrap.GitignoreEntries(ws.root, ws.cfg.Directories(ws.root))
		bopts = append(bopts, fsbootstrap.WithGitignore(ws.root, entries...))
	}

	set, err := usecase.NewInitialize(fsbootstrap.NewBootstrapper(bopts...)).Execute(ws.cfg, ws.root)
	if err != nil {
		ws.Close()
		return nil, nil, err
	}
	return ws, set, nil
}

// resolveWorkspaceRoot prefers the flag, then the nearest directory holding a
// pwstasks config, then the working directory.
func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	wd, _ = filepath.Abs(wd)

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, nil
		}
		return "", err
	}
	return root, nil
}

func relTo(root, p string) string {
	rel, err := filepath.Rel(root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}
