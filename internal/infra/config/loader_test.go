package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/pwstasks/internal/domain"
)

func TestLoad_NoFileReturnsDefaults(t *testing.T) {
	cfg, err := NewLoader(nil).Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if diff := cmp.Diff(domain.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoad_YAMLAppliesOnTopOfDefaults(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pwstasks.yaml"), `
pwstasks:
  paths:
    archives_dir: dist
  scrape:
    urls_to_process: -1
  fetch:
    input_data_url: https://example.com/input-data.zip
    timeout: 90s
  archive:
    fail_if_exists: true
`)

	cfg, err := NewLoader(nil).Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	want := domain.DefaultConfig()
	want.Paths.ArchivesDir = "dist"
	want.Scrape.URLsToProcess = -1
	want.Fetch.InputDataURL = "https://example.com/input-data.zip"
	want.Fetch.Timeout = 90 * time.Second
	want.Archive.FailIfExists = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_JSON5(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pwstasks.json5"), `{
  // comments are allowed
  pwstasks: {
    fetch: { mechanism: "command", command: "curl", args: ["-sSL", "-o", "{{output}}", "{{url}}"] },
    archive: { symlinks: "follow" },
  },
}`)

	cfg, err := NewLoader(nil).Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Fetch.Mechanism != domain.FetchCommand || cfg.Fetch.Command != "curl" {
		t.Fatalf("unexpected fetch config %+v", cfg.Fetch)
	}
	if diff := cmp.Diff([]string{"-sSL", "-o", "{{output}}", "{{url}}"}, cfg.Fetch.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
	if cfg.Archive.Symlinks != domain.SymlinksFollow {
		t.Fatalf("expected symlinks=follow, got %s", cfg.Archive.Symlinks)
	}
}

func TestLoad_LocalOverrideWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pwstasks.yaml"), `
pwstasks:
  paths:
    input_dir: data-in
    archives_dir: archives
  fetch:
    input_data_url: https://example.com/shared.zip
`)
	writeFile(t, filepath.Join(root, "pwstasks.local.yaml"), `
pwstasks:
  fetch:
    input_data_url: file:///mnt/cache/input-data.zip
  scrape:
    urls_to_process: 25
`)

	cfg, err := NewLoader(nil).Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Fetch.InputDataURL != "file:///mnt/cache/input-data.zip" {
		t.Fatalf("expected local url, got %q", cfg.Fetch.InputDataURL)
	}
	if cfg.Scrape.URLsToProcess != 25 {
		t.Fatalf("expected 25 urls, got %d", cfg.Scrape.URLsToProcess)
	}
	if cfg.Paths.ArchivesDir != "archives" {
		t.Fatalf("expected base value kept, got %q", cfg.Paths.ArchivesDir)
	}
}

func TestLoad_LocalOverrideCanClearFlag(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pwstasks.yaml"), `
pwstasks:
  archive:
    fail_if_exists: true
`)
	writeFile(t, filepath.Join(root, "pwstasks.local.yaml"), `
pwstasks:
  archive:
    fail_if_exists: false
`)

	cfg, err := NewLoader(nil).Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Archive.FailIfExists {
		t.Fatalf("expected local override to clear fail_if_exists")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "pwstasks.yaml")
	writeFile(t, path, "pwstasks: [unclosed\n")

	_, err := NewLoader(nil).Load(root)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"mechanism": "pwstasks:\n  fetch:\n    mechanism: ftp\n",
		"timeout":   "pwstasks:\n  fetch:\n    timeout: soon\n",
		"symlinks":  "pwstasks:\n  archive:\n    symlinks: sometimes\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			root := t.TempDir()
			path := filepath.Join(root, "pwstasks.yaml")
			writeFile(t, path, content)

			_, err := NewLoader(nil).Load(root)
			if !domain.IsKind(err, domain.KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
			var oe *domain.OpError
			if !asOpError(err, &oe) || oe.Path != path {
				t.Fatalf("expected error to carry path %s, got %v", path, err)
			}
		})
	}
}

func TestLocalPath(t *testing.T) {
	if got := localPath(filepath.Join("a", "pwstasks.json5")); got != filepath.Join("a", "pwstasks.local.json5") {
		t.Fatalf("unexpected local path %s", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func asOpError(err error, target **domain.OpError) bool {
	oe, ok := err.(*domain.OpError)
	if ok {
		*target = oe
	}
	return ok
}
