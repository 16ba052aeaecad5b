package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aalvaropc/pwstasks/internal/domain"
)

// mapConfig applies the parsed values on top of the defaults.
func mapConfig(path string, dto fileConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	s := dto.PWSTasks

	setString(&cfg.Paths.InputDir, s.Paths.InputDir)
	setString(&cfg.Paths.DataDir, s.Paths.DataDir)
	setString(&cfg.Paths.ArchivesDir, s.Paths.ArchivesDir)
	setString(&cfg.Paths.IntermediateDir, s.Paths.IntermediateDir)
	setString(&cfg.Paths.LogsDir, s.Paths.LogsDir)

	setString(&cfg.Files.HTMLURLs, s.Files.HTMLURLs)
	setString(&cfg.Files.URLs, s.Files.URLs)
	setString(&cfg.Files.RequestsCacheDB, s.Files.RequestsCacheDB)

	if s.Scrape.URLsToProcess != nil {
		cfg.Scrape.URLsToProcess = *s.Scrape.URLsToProcess
	}

	setString(&cfg.Fetch.InputDataURL, s.Fetch.InputDataURL)
	setString(&cfg.Fetch.Command, s.Fetch.Command)
	if len(s.Fetch.Args) > 0 {
		cfg.Fetch.Args = append([]string(nil), s.Fetch.Args...)
	}
	if s.Fetch.Mechanism != "" {
		cfg.Fetch.Mechanism = domain.FetchMechanism(s.Fetch.Mechanism)
	}
	if s.Fetch.Timeout != "" {
		d, err := time.ParseDuration(s.Fetch.Timeout)
		if err != nil {
			return cfg, &domain.OpError{
				Op:   "config.map",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("fetch.timeout: %w", err),
			}
		}
		cfg.Fetch.Timeout = d
	}

	if s.Archive.FailIfExists != nil {
		cfg.Archive.FailIfExists = *s.Archive.FailIfExists
	}
	if s.Archive.Symlinks != "" {
		cfg.Archive.Symlinks = domain.SymlinkPolicy(s.Archive.Symlinks)
	}

	if err := cfg.Validate(); err != nil {
		var oe *domain.OpError
		if errors.As(err, &oe) && oe.Path == "" {
			oe.Path = path
		}
		return cfg, err
	}
	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
