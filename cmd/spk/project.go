package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/spk/internal/config"
	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/detect"
	"github.com/jorge-barreto/spk/internal/docs"
	"github.com/jorge-barreto/spk/internal/templates"
	"go.uber.org/zap"
)

// project is the directory spk works in and its effective configuration.
type project struct {
	Root      string
	Cfg       *config.Config
	HasConfig bool
}

// SpkDir returns the project's .spk directory.
func (p *project) SpkDir() string {
	return filepath.Join(p.Root, config.Dir)
}

// findProjectRoot walks up from dir looking for .spk/config.yaml.
func findProjectRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(config.Path(dir)); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// openProject loads the nearest config above cwd. Without one, cwd is the
// root and defaults apply.
func openProject() (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, ok := findProjectRoot(cwd)
	if !ok {
		zap.L().Debug("no config found, using defaults", zap.String("root", cwd))
		return &project{Root: cwd, Cfg: config.Default(cwd)}, nil
	}
	cfg, err := config.Load(config.Path(root), root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &project{Root: root, Cfg: cfg, HasConfig: true}, nil
}

// framework picks the target: explicit flag, then config, then whatever
// package.json implies, then react.
func (p *project) framework(flag string) (string, error) {
	if flag != "" {
		fw := strings.ToLower(strings.TrimSpace(flag))
		if !content.ValidFramework(fw) {
			return "", fmt.Errorf("unknown framework %q (must be %s)", flag, strings.Join(content.Frameworks, " or "))
		}
		return fw, nil
	}
	if p.Cfg.Framework != "" {
		return p.Cfg.Framework, nil
	}
	proj, err := detect.Detect(p.Root)
	if err != nil {
		return "", err
	}
	if proj.Framework != "" {
		zap.L().Debug("framework detected", zap.String("framework", proj.Framework))
		return proj.Framework, nil
	}
	return content.React, nil
}

func (p *project) contentFS() fs.FS {
	if p.Cfg.ContentDir != "" {
		return os.DirFS(p.Cfg.ContentDir)
	}
	return content.Embedded()
}

func (p *project) registry(framework string) (*docs.Registry, error) {
	b, err := content.Load(p.contentFS(), framework)
	if err != nil {
		return nil, err
	}
	return docs.NewRegistry(framework, b.Fragments)
}

func (p *project) catalog(framework string) (*templates.Catalog, error) {
	b, err := content.Load(p.contentFS(), framework)
	if err != nil {
		return nil, err
	}
	return templates.NewCatalog(framework, b.Templates)
}
