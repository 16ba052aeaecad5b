package fetch

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/app/template"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// Placeholders rendered in CommandFetcher arguments.
const (
	PlaceholderURL    = "{{url}}"
	PlaceholderOutput = "{{output}}"
)

// CommandFetcher shells out to an external transfer tool (wget by default).
type CommandFetcher struct {
	name   string
	args   []string
	logger *slog.Logger
}

// NewCommandFetcher builds a fetcher for name. When args is empty a default
// argument list is picked for wget and curl.
func NewCommandFetcher(name string, args []string, logger *slog.Logger) *CommandFetcher {
	if logger == nil {
		logger = discardLogger()
	}
	if len(args) == 0 {
		args = defaultArgs(name)
	}
	return &CommandFetcher{name: name, args: args, logger: logger}
}

func defaultArgs(name string) []string {
	switch strings.TrimSuffix(filepath.Base(name), ".exe") {
	case "curl":
		return []string{"-fsSL", "-o", PlaceholderOutput, PlaceholderURL}
	default:
		return []string{"-q", "-O", PlaceholderOutput, PlaceholderURL}
	}
}

var _ ports.RemoteFetcher = (*CommandFetcher)(nil)

func (f *CommandFetcher) Fetch(ctx context.Context, url, destDir string) error {
	return install(ctx, f.logger, "fetch.command", url, destDir, func(ctx context.Context, dst string) error {
		args, err := template.RenderAll(f.args, map[string]string{"url": url, "output": dst})
		if err != nil {
			return err
		}

		cmd := exec.CommandContext(ctx, f.name, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		f.logger.Debug("fetch.command.run", "cmd", f.name, "args", args)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s failed: %w: %s", f.name, err, strings.TrimSpace(stderr.String()))
		}
		return nil
	})
}
