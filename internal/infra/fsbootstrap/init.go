package fsbootstrap

import (
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
	gitignoreHeader = "# pwstasks"
	dirPerm         = 0o755
)

// Bootstrapper creates the directories of a DirectorySet on the local disk.
type Bootstrapper struct {
	logger *slog.Logger

	gitignoreRoot    string
	gitignoreEntries []string
}

type Option func(*Bootstrapper)

func WithLogger(l *slog.Logger) Option {
	return func(b *Bootstrapper) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithGitignore makes Ensure also list entries in root/.gitignore.
func WithGitignore(root string, entries ...string) Option {
	return func(b *Bootstrapper) {
		b.gitignoreRoot = root
		b.gitignoreEntries = entries
	}
}

func NewBootstrapper(opts ...Option) *Bootstrapper {
	b := &Bootstrapper{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.DirectoryBootstrapper = (*Bootstrapper)(nil)

// Ensure creates every directory in set, in order, together with any missing
// parents. Directories that already exist are left alone. It stops at the
// first path that cannot be created.
func (b *Bootstrapper) Ensure(set domain.DirectorySet) error {
	for i, raw := range set {
		if strings.TrimSpace(raw) == "" {
			return &domain.OpError{
				Op:   "fsbootstrap.ensure",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("directory #%d is empty", i),
			}
		}

		dir := filepath.Clean(raw)
		created, err := b.ensureDir(dir)
		if err != nil {
			return &domain.OpError{
				Op:   "fsbootstrap.ensure",
				Kind: domain.KindFilesystem,
				Path: dir,
				Err:  err,
			}
		}
		b.logger.Debug("bootstrap.ensure_dir", "path", dir, "created", created)
	}

	if b.gitignoreRoot == "" || len(b.gitignoreEntries) == 0 {
		return nil
	}
	if err := ensureGitignore(b.gitignoreRoot, b.gitignoreEntries); err != nil {
		return &domain.OpError{
			Op:   "fsbootstrap.gitignore",
			Kind: domain.KindFilesystem,
			Path: filepath.Join(b.gitignoreRoot, ".gitignore"),
			Err:  err,
		}
	}
	return nil
}

func (b *Bootstrapper) ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, fmt.Errorf("exists and is not a directory")
	case !errors.Is(err, os.ErrNotExist):
		return false, err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return false, err
	}
	return true, nil
}

func ensureGitignore(root string, entries []string) error {
	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{gitignoreHeader}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
			present[e] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[gitignoreHeader] {
		out.WriteString(gitignoreHeader)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}

// GitignoreEntries turns workspace directories into root-relative ignore lines.
func GitignoreEntries(root string, set domain.DirectorySet) []string {
	out := make([]string, 0, len(set))
	seen := map[string]bool{}
	for _, dir := range set {
		rel, err := filepath.Rel(root, dir)
		if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
			continue
		}
		// data-out/intermediate is covered by data-out/
		top := strings.SplitN(filepath.ToSlash(rel), "/", 2)[0] + "/"
		if seen[top] {
			continue
		}
		seen[top] = true
		out = append(out, top)
	}
	return out
}
