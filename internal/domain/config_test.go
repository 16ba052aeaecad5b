package domain

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input dir", func(c *Config) { c.Paths.InputDir = " " }},
		{"unknown mechanism", func(c *Config) { c.Fetch.Mechanism = "ftp" }},
		{"command without binary", func(c *Config) {
			c.Fetch.Mechanism = FetchCommand
			c.Fetch.Command = ""
		}},
		{"unknown symlink policy", func(c *Config) { c.Archive.Symlinks = "maybe" }},
		{"zero urls", func(c *Config) { c.Scrape.URLsToProcess = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !IsKind(err, KindInvalidConfig) {
				t.Fatalf("expected KindInvalidConfig, got %v", err)
			}
		})
	}
}

func TestConfigValidate_AllURLs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scrape.URLsToProcess = -1
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected -1 to be accepted, got %v", err)
	}
}

func TestConfigDirectories_ResolvesAgainstRoot(t *testing.T) {
	root := filepath.FromSlash("/work/pws")
	cfg := DefaultConfig()
	cfg.Paths.ArchivesDir = filepath.FromSlash("/srv/archives")

	want := DirectorySet{
		filepath.Join(root, "data-in"),
		filepath.Join(root, "data-out"),
		filepath.FromSlash("/srv/archives"),
		filepath.Join(root, "data-out", "intermediate"),
	}
	if diff := cmp.Diff(want, cfg.Directories(root)); diff != "" {
		t.Fatalf("directories mismatch (-want +got):\n%s", diff)
	}
}
