package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Config replaces the scraper's process-wide path constants. It is built once
// by the entry point and handed to every component.
type Config struct {
	Paths   PathsConfig
	Files   FilesConfig
	Scrape  ScrapeConfig
	Fetch   FetchConfig
	Archive ArchiveConfig
}

type PathsConfig struct {
	InputDir        string
	DataDir         string
	ArchivesDir     string
	IntermediateDir string
	LogsDir         string
}

type FilesConfig struct {
	HTMLURLs string
	URLs     string
	// RequestsCacheDB is stored without the ".sqlite" suffix.
	RequestsCacheDB string
}

type ScrapeConfig struct {
	// URLsToProcess limits the scrape; -1 processes every URL.
	URLsToProcess int
}

type FetchMechanism string

const (
	FetchAuto    FetchMechanism = "auto"
	FetchHTTP    FetchMechanism = "http"
	FetchBlob    FetchMechanism = "blob"
	FetchCommand FetchMechanism = "command"
)

type FetchConfig struct {
	InputDataURL string
	Mechanism    FetchMechanism
	Command      string
	// Args override the command's default arguments; {{url}} and
	// {{output}} are substituted.
	Args         []string
	Timeout      time.Duration
}

type SymlinkPolicy string

const (
	SymlinksSkip   SymlinkPolicy = "skip"
	SymlinksFollow SymlinkPolicy = "follow"
)

type ArchiveConfig struct {
	FailIfExists bool
	Symlinks     SymlinkPolicy
}

// Archive names used by the packaging tasks.
const (
	InputDataArchive           = "input-data.zip"
	IntermediateResultsArchive = "intermediate-results.zip"
)

// DefaultConfig mirrors the layout the scraper has always used.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			InputDir:        "data-in",
			DataDir:         "data-out",
			ArchivesDir:     "archives",
			IntermediateDir: filepath.Join("data-out", "intermediate"),
			LogsDir:         filepath.Join(".pwstasks", "logs"),
		},
		Files: FilesConfig{
			HTMLURLs:        filepath.Join("data-in", "wsd-urls-js-table.html"),
			URLs:            filepath.Join("data-out", "wsd-urls.csv"),
			RequestsCacheDB: filepath.Join("data-in", "requests-cache-db"),
		},
		Scrape: ScrapeConfig{URLsToProcess: 1000},
		Fetch: FetchConfig{
			Mechanism: FetchAuto,
			Command:   "wget",
			Timeout:   10 * time.Minute,
		},
		Archive: ArchiveConfig{Symlinks: SymlinksSkip},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	required := []struct {
		name, value string
	}{
		{"paths.input_dir", c.Paths.InputDir},
		{"paths.data_dir", c.Paths.DataDir},
		{"paths.archives_dir", c.Paths.ArchivesDir},
		{"paths.intermediate_dir", c.Paths.IntermediateDir},
		{"files.html_urls", c.Files.HTMLURLs},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &OpError{Op: "config.validate", Kind: KindInvalidConfig, Err: fmt.Errorf("%s must not be empty", r.name)}
		}
	}

	switch c.Fetch.Mechanism {
	case FetchAuto, FetchHTTP, FetchBlob, FetchCommand:
	default:
		return &OpError{Op: "config.validate", Kind: KindInvalidConfig, Err: fmt.Errorf("fetch.mechanism %q (expected auto|http|blob|command)", c.Fetch.Mechanism)}
	}
	if c.Fetch.Mechanism == FetchCommand && strings.TrimSpace(c.Fetch.Command) == "" {
		return &OpError{Op: "config.validate", Kind: KindInvalidConfig, Err: fmt.Errorf("fetch.command must be set when mechanism is command")}
	}

	switch c.Archive.Symlinks {
	case SymlinksSkip, SymlinksFollow:
	default:
		return &OpError{Op: "config.validate", Kind: KindInvalidConfig, Err: fmt.Errorf("archive.symlinks %q (expected skip|follow)", c.Archive.Symlinks)}
	}

	if c.Scrape.URLsToProcess < -1 || c.Scrape.URLsToProcess == 0 {
		return &OpError{Op: "config.validate", Kind: KindInvalidConfig, Err: fmt.Errorf("scrape.urls_to_process must be positive or -1, got %d", c.Scrape.URLsToProcess)}
	}
	return nil
}

// Resolve joins a configured path onto root unless it is already absolute.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) || root == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// Directories returns the directories every task expects, in bootstrap order.
func (c Config) Directories(root string) DirectorySet {
	return DirectorySet{
		Resolve(root, c.Paths.InputDir),
		Resolve(root, c.Paths.DataDir),
		Resolve(root, c.Paths.ArchivesDir),
		Resolve(root, c.Paths.IntermediateDir),
	}
}
