// Package ziparchive packs files and directory trees into zip archives.
//
// Archives are written to a temporary sibling of the destination and renamed
// into place only once every entry has been written, so a failed build never
// leaves a partial archive behind and never clobbers an existing one.
package ziparchive

import (
	"archive/zip"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

type Builder struct {
	logger       *slog.Logger
	failIfExists bool
	symlinks     domain.SymlinkPolicy
	method       uint16
	progress     func(name string, size int64)
	open         func(path string) (io.ReadCloser, error)
}

type Option func(*Builder)

func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithFailIfExists refuses to replace an existing destination.
func WithFailIfExists(enabled bool) Option {
	return func(b *Builder) { b.failIfExists = enabled }
}

func WithSymlinks(policy domain.SymlinkPolicy) Option {
	return func(b *Builder) {
		if policy != "" {
			b.symlinks = policy
		}
	}
}

// WithStore writes entries uncompressed.
func WithStore() Option {
	return func(b *Builder) { b.method = zip.Store }
}

// WithProgress is called after each entry is written.
func WithProgress(fn func(name string, size int64)) Option {
	return func(b *Builder) { b.progress = fn }
}

// WithOpener replaces os.Open for source files. Useful for tests.
func WithOpener(open func(path string) (io.ReadCloser, error)) Option {
	return func(b *Builder) { b.open = open }
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		symlinks: domain.SymlinksSkip,
		method:   zip.Deflate,
		open:     func(p string) (io.ReadCloser, error) { return os.Open(p) },
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ ports.ArchiveBuilder = (*Builder)(nil)

// Build writes every regular file under job.SourceRoot into job.Destination.
// A single-file source yields one entry named after the file. Directory
// sources yield one entry per file, named by its slash-separated path relative
// to the source root. An existing destination is replaced unless the builder
// was created WithFailIfExists.
func (b *Builder) Build(job domain.ArchiveJob) (domain.ArchiveSummary, error) {
	if strings.TrimSpace(job.SourceRoot) == "" || strings.TrimSpace(job.Destination) == "" {
		return domain.ArchiveSummary{}, &domain.OpError{
			Op:   "ziparchive.build",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("source and destination are required"),
		}
	}

	src, err := filepath.Abs(job.SourceRoot)
	if err != nil {
		return domain.ArchiveSummary{}, fsError("ziparchive.source", job.SourceRoot, err)
	}
	dst, err := filepath.Abs(job.Destination)
	if err != nil {
		return domain.ArchiveSummary{}, fsError("ziparchive.destination", job.Destination, err)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return domain.ArchiveSummary{}, fsError("ziparchive.source", src, err)
	}

	if err := b.checkDestination(dst); err != nil {
		return domain.ArchiveSummary{}, err
	}

	parent := filepath.Dir(dst)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return domain.ArchiveSummary{}, fsError("ziparchive.mkdir", parent, err)
	}

	// The walk sees resolved paths, so the skip keys are resolved too.
	realParent, err := filepath.EvalSymlinks(parent)
	if err != nil {
		return domain.ArchiveSummary{}, fsError("ziparchive.mkdir", parent, err)
	}

	f, err := os.CreateTemp(parent, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return domain.ArchiveSummary{}, writeError("ziparchive.create", dst, err)
	}
	tmp := f.Name()
	realDst := filepath.Join(realParent, filepath.Base(dst))
	realTmp := filepath.Join(realParent, filepath.Base(tmp))

	w := &archiveWriter{
		Builder: b,
		zw:      zip.NewWriter(f),
		skip:    map[string]bool{dst: true, tmp: true, realDst: true, realTmp: true},
		summary: domain.ArchiveSummary{Destination: dst, Names: []string{}},
	}

	if srcInfo.IsDir() {
		err = w.addTree(src)
	} else {
		err = w.addFile(src, filepath.Base(src), srcInfo)
	}

	if err != nil {
		_ = w.zw.Close()
		_ = f.Close()
		_ = os.Remove(tmp)
		b.logger.Warn("archive.failed", "source", src, "destination", dst, "entries", w.summary.Entries, "err", err)
		return domain.ArchiveSummary{}, err
	}

	if err := w.zw.Close(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return domain.ArchiveSummary{}, writeError("ziparchive.close", dst, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return domain.ArchiveSummary{}, writeError("ziparchive.close", dst, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return domain.ArchiveSummary{}, writeError("ziparchive.rename", dst, err)
	}

	if info, err := os.Stat(dst); err == nil {
		w.summary.ArchiveBytes = info.Size()
	}

	b.logger.Info("archive.written",
		"source", src,
		"destination", dst,
		"entries", w.summary.Entries,
		"uncompressed_bytes", w.summary.UncompressedBytes,
		"archive_bytes", w.summary.ArchiveBytes,
	)
	return w.summary, nil
}

func (b *Builder) checkDestination(dst string) error {
	info, err := os.Stat(dst)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fsError("ziparchive.destination", dst, err)
	}
	if info.IsDir() {
		return writeError("ziparchive.destination", dst, errors.New("destination is a directory"))
	}
	if b.failIfExists {
		return writeError("ziparchive.destination", dst, domain.ErrDestinationExists)
	}
	return nil
}

type archiveWriter struct {
	*Builder
	zw      *zip.Writer
	skip    map[string]bool
	summary domain.ArchiveSummary
}

func (w *archiveWriter) addTree(root string) error {
	// WalkDir does not descend into a symlinked root.
	walkRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return fsError("ziparchive.source", root, err)
	}

	return filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return writeError("ziparchive.walk", p, err)
		}
		if d.IsDir() {
			return nil
		}

		// Skip the archive itself when it lives under the source tree.
		if w.skip[filepath.Join(root, mustRel(walkRoot, p))] || w.skip[p] {
			return nil
		}

		info, ok, err := w.entryInfo(p, d)
		if err != nil {
			return writeError("ziparchive.stat", p, err)
		}
		if !ok {
			return nil
		}

		rel, err := filepath.Rel(walkRoot, p)
		if err != nil {
			return writeError("ziparchive.rel", p, err)
		}
		return w.addFile(p, filepath.ToSlash(rel), info)
	})
}

// entryInfo decides whether p becomes an entry. Symlinks are skipped or
// resolved to their target according to policy; symlinked directories are
// never descended.
func (w *archiveWriter) entryInfo(p string, d fs.DirEntry) (fs.FileInfo, bool, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		if w.symlinks != domain.SymlinksFollow {
			w.logger.Debug("archive.skip_symlink", "path", p)
			return nil, false, nil
		}
		info, err := os.Stat(p)
		if err != nil {
			return nil, false, err
		}
		if !info.Mode().IsRegular() {
			w.logger.Debug("archive.skip_irregular", "path", p, "mode", info.Mode().String())
			return nil, false, nil
		}
		return info, true, nil
	}

	if !d.Type().IsRegular() {
		w.logger.Debug("archive.skip_irregular", "path", p, "mode", d.Type().String())
		return nil, false, nil
	}
	info, err := d.Info()
	if err != nil {
		return nil, false, err
	}
	return info, true, nil
}

func (w *archiveWriter) addFile(p, name string, info fs.FileInfo) error {
	h, err := zip.FileInfoHeader(info)
	if err != nil {
		return writeError("ziparchive.header", p, err)
	}
	h.Name = name
	h.Method = w.method

	dst, err := w.zw.CreateHeader(h)
	if err != nil {
		return writeError("ziparchive.entry", p, err)
	}

	r, err := w.open(p)
	if err != nil {
		return writeError("ziparchive.open", p, err)
	}
	n, err := io.Copy(dst, r)
	_ = r.Close()
	if err != nil {
		return writeError("ziparchive.copy", p, err)
	}

	w.summary.Entries++
	w.summary.UncompressedBytes += n
	w.summary.Names = append(w.summary.Names, name)
	w.logger.Debug("archive.entry", "name", name, "bytes", n)
	if w.progress != nil {
		w.progress(name, n)
	}
	return nil
}

func mustRel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}

func fsError(op, path string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindFilesystem, Path: path, Err: err}
}

func writeError(op, path string, err error) error {
	var oe *domain.OpError
	if errors.As(err, &oe) {
		return err
	}
	return &domain.OpError{Op: op, Kind: domain.KindArchiveWrite, Path: path, Err: err}
}
