package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/templates"
)

// Validate checks the config for errors and sets defaults.
// Relative out-dir and content-dir values are resolved against projectRoot.
func Validate(cfg *Config, projectRoot string) error {
	cfg.Framework = strings.ToLower(strings.TrimSpace(cfg.Framework))
	if cfg.Framework != "" && !content.ValidFramework(cfg.Framework) {
		return fmt.Errorf("config: unknown framework %q (must be %s)", cfg.Framework, strings.Join(content.Frameworks, " or "))
	}

	if cfg.OutDir == "" {
		cfg.OutDir = "."
	}
	if !filepath.IsAbs(cfg.OutDir) {
		cfg.OutDir = filepath.Join(projectRoot, cfg.OutDir)
	}

	if cfg.ContentDir != "" {
		if !filepath.IsAbs(cfg.ContentDir) {
			cfg.ContentDir = filepath.Join(projectRoot, cfg.ContentDir)
		}
		info, err := os.Stat(cfg.ContentDir)
		if err != nil {
			return fmt.Errorf("config: content-dir %q not found", cfg.ContentDir)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: content-dir %q is not a directory", cfg.ContentDir)
		}
	}

	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !templates.ValidName(k) {
			return fmt.Errorf("config: params: %q is not a valid placeholder name (must match [A-Za-z][A-Za-z0-9]*)", k)
		}
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}

	return nil
}
