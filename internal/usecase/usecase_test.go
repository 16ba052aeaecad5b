package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/infra/fsbootstrap"
	"github.com/aalvaropc/pwstasks/internal/infra/ziparchive"
)

// --- fakes ---

type fakeBootstrapper struct {
	got domain.DirectorySet
	err error
}

func (f *fakeBootstrapper) Ensure(set domain.DirectorySet) error {
	f.got = set
	return f.err
}

type fakeBuilder struct {
	jobs []domain.ArchiveJob
}

func (f *fakeBuilder) Build(job domain.ArchiveJob) (domain.ArchiveSummary, error) {
	f.jobs = append(f.jobs, job)
	return domain.ArchiveSummary{Destination: job.Destination}, nil
}

type fakeFetcher struct {
	files       map[string]string
	err         error
	gotURL      string
	hadDeadline bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, url, destDir string) error {
	f.gotURL = url
	_, f.hadDeadline = ctx.Deadline()
	if f.err != nil {
		return f.err
	}
	for name, content := range f.files {
		p := filepath.Join(destDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

type fakeFormatter struct {
	failOn string
	seen   []string
}

func (f *fakeFormatter) FormatFile(path string) (domain.FormatResult, error) {
	f.seen = append(f.seen, path)
	if path == f.failOn {
		return domain.FormatResult{}, &domain.OpError{Op: "jsonfmt.format", Kind: domain.KindInvalidJSON, Path: path, Err: domain.ErrInvalidJSON}
	}
	return domain.FormatResult{Path: path, Changed: true}, nil
}

// --- Initialize ---

func TestInitialize_PassesConfiguredDirectories(t *testing.T) {
	b := &fakeBootstrapper{}
	cfg := domain.DefaultConfig()

	set, err := NewInitialize(b).Execute(cfg, "/ws")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	want := domain.DirectorySet{
		filepath.Join("/ws", "data-in"),
		filepath.Join("/ws", "data-out"),
		filepath.Join("/ws", "archives"),
		filepath.Join("/ws", "data-out", "intermediate"),
	}
	if diff := cmp.Diff(want, b.got); diff != "" {
		t.Fatalf("directory set mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, set); diff != "" {
		t.Fatalf("returned set mismatch (-want +got):\n%s", diff)
	}
}

func TestInitialize_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewInitialize(&fakeBootstrapper{err: boom}).Execute(domain.DefaultConfig(), "/ws")
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

// --- PackageArchive ---

func TestPackageArchive_NamedTasks(t *testing.T) {
	b := &fakeBuilder{}
	uc := NewPackageArchive(b)
	cfg := domain.DefaultConfig()

	if _, err := uc.Input(cfg, "/ws"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Intermediate(cfg, "/ws"); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Path(cfg, "/ws", "data-out/wsd-urls.csv", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := uc.Path(cfg, "/ws", "data-out", "/tmp/out.zip"); err != nil {
		t.Fatal(err)
	}

	want := []domain.ArchiveJob{
		{SourceRoot: filepath.Join("/ws", "data-in", "wsd-urls-js-table.html"), Destination: filepath.Join("/ws", "archives", "input-data.zip")},
		{SourceRoot: filepath.Join("/ws", "data-out", "intermediate"), Destination: filepath.Join("/ws", "archives", "intermediate-results.zip")},
		{SourceRoot: filepath.Join("/ws", "data-out", "wsd-urls.csv"), Destination: filepath.Join("/ws", "archives", "wsd-urls.csv.zip")},
		{SourceRoot: filepath.Join("/ws", "data-out"), Destination: filepath.Clean("/tmp/out.zip")},
	}
	if diff := cmp.Diff(want, b.jobs); diff != "" {
		t.Fatalf("jobs mismatch (-want +got):\n%s", diff)
	}
}

func TestPackageIntermediate_AfterInitialize(t *testing.T) {
	root := t.TempDir()
	cfg := domain.DefaultConfig()

	if _, err := NewInitialize(fsbootstrap.NewBootstrapper()).Execute(cfg, root); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	inter := domain.Resolve(root, cfg.Paths.IntermediateDir)
	if err := os.MkdirAll(filepath.Join(inter, "stations"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(inter, "stations", "KBOS.json"), []byte(`{"id": "KBOS"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := NewPackageArchive(ziparchive.NewBuilder()).Intermediate(cfg, root)
	if err != nil {
		t.Fatalf("package: %v", err)
	}
	if sum.Entries != 1 {
		t.Fatalf("expected 1 entry, got %d", sum.Entries)
	}

	zr, err := zip.OpenReader(filepath.Join(root, "archives", domain.IntermediateResultsArchive))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "stations/KBOS.json" {
		t.Fatalf("unexpected entries %v", zr.File)
	}
}

// --- InstallInputData ---

func TestInstallInputData_ListsInstalledFiles(t *testing.T) {
	dest := t.TempDir()
	f := &fakeFetcher{files: map[string]string{
		"wsd-urls-js-table.html": "<table></table>",
		"cache/requests.sqlite":  "db",
	}}

	files, err := NewInstallInputData(f).Execute(context.Background(), "https://example.com/input-data.zip", dest, time.Minute)
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	want := []domain.InstalledFile{
		{Path: "cache/requests.sqlite", Size: 2},
		{Path: "wsd-urls-js-table.html", Size: 15},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
	if f.gotURL != "https://example.com/input-data.zip" {
		t.Fatalf("url not passed through: %q", f.gotURL)
	}
	if !f.hadDeadline {
		t.Fatalf("expected fetch context to carry the timeout")
	}
}

func TestInstallInputData_EmptyURL(t *testing.T) {
	f := &fakeFetcher{}
	_, err := NewInstallInputData(f).Execute(context.Background(), "  ", t.TempDir(), 0)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
	if f.gotURL != "" {
		t.Fatalf("fetcher must not be called")
	}
}

func TestInstallInputData_FetchError(t *testing.T) {
	fetchErr := &domain.OpError{Op: "fetch.http", Kind: domain.KindFetch, Err: errors.New("unexpected status 404")}
	_, err := NewInstallInputData(&fakeFetcher{err: fetchErr}).Execute(context.Background(), "https://x/y.zip", t.TempDir(), 0)
	if !domain.IsKind(err, domain.KindFetch) {
		t.Fatalf("expected KindFetch, got %v", err)
	}
}

// --- FormatJSON ---

func TestFormatJSON_StopsAtFirstFailure(t *testing.T) {
	f := &fakeFormatter{failOn: "b.json"}
	res, err := NewFormatJSON(f).Execute([]string{"a.json", "b.json", "c.json"})
	if !domain.IsKind(err, domain.KindInvalidJSON) {
		t.Fatalf("expected KindInvalidJSON, got %v", err)
	}
	if len(res) != 1 || res[0].Path != "a.json" {
		t.Fatalf("unexpected results %+v", res)
	}
	if diff := cmp.Diff([]string{"a.json", "b.json"}, f.seen); diff != "" {
		t.Fatalf("seen mismatch (-want +got):\n%s", diff)
	}
}
