package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/pwstasks/internal/domain"
	"github.com/aalvaropc/pwstasks/internal/ports"
)

// FileNames lists the accepted config files, in lookup order.
var FileNames = []string{"pwstasks.yaml", "pwstasks.yml", "pwstasks.json5"}

type Loader struct {
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads the workspace config under root. A sibling
// pwstasks.local.<ext> overrides any value it sets. Without a config file
// the defaults are returned.
func (l *Loader) Load(root string) (domain.Config, error) {
	path, ok := findConfigFile(root)
	if !ok {
		l.logger.Debug("config.defaults", "root", root)
		return domain.DefaultConfig(), nil
	}

	var dto fileConfig
	if _, err := decodeFile(path, &dto); err != nil {
		return domain.DefaultConfig(), err
	}

	local := localPath(path)
	var override fileConfig
	found, err := decodeFile(local, &override)
	if err != nil {
		return domain.DefaultConfig(), err
	}
	if found {
		if err := mergo.Merge(&dto, override, mergo.WithOverride); err != nil {
			return domain.DefaultConfig(), &domain.OpError{Op: "config.merge", Kind: domain.KindInvalidConfig, Path: local, Err: err}
		}
		overlayExplicit(&dto, override)
		l.logger.Info("config.local_override", "local", local)
	}

	return mapConfig(path, dto)
}

// overlayExplicit copies pointer fields the override sets. mergo skips a
// source whose value is zero, so an explicit false or 0 would be lost.
func overlayExplicit(dst *fileConfig, src fileConfig) {
	if v := src.PWSTasks.Scrape.URLsToProcess; v != nil {
		n := *v
		dst.PWSTasks.Scrape.URLsToProcess = &n
	}
	if v := src.PWSTasks.Archive.FailIfExists; v != nil {
		b := *v
		dst.PWSTasks.Archive.FailIfExists = &b
	}
}

func findConfigFile(root string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// localPath maps pwstasks.yaml to pwstasks.local.yaml.
func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

func decodeFile(path string, out *fileConfig) (bool, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &domain.OpError{Op: "config.read", Kind: domain.KindFilesystem, Path: path, Err: err}
	}
	if len(strings.TrimSpace(string(b))) == 0 {
		return true, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json5", ".json":
		err = json5.Unmarshal(b, out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, out)
	default:
		err = fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return false, &domain.OpError{Op: "config.decode", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}
	return true, nil
}
