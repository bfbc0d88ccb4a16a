// Package detect inspects a project directory to work out which framework
// target it uses and whether Spoosh is installed.
package detect

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jorge-barreto/spk/internal/content"
)

// markers map dependency names to the framework they imply, strongest first.
var markers = []struct {
	dep       string
	framework string
}{
	{"@spoosh/angular", content.Angular},
	{"@spoosh/react", content.React},
	{"@angular/core", content.Angular},
	{"react", content.React},
}

// workspaceFiles imply a framework when package.json is silent.
var workspaceFiles = map[string]string{
	"angular.json": content.Angular,
}

// Project holds what was learned about a project directory.
type Project struct {
	Framework      string   // empty when undetermined
	SpooshPackages []string // sorted @spoosh/* dependency names
	HasPackageJSON bool
}

// Installed reports whether any Spoosh package is a dependency.
func (p *Project) Installed() bool {
	return len(p.SpooshPackages) > 0
}

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	PeerDeps        map[string]string `json:"peerDependencies"`
}

// Detect reads package.json and well-known workspace files under root.
// A missing package.json is not an error.
func Detect(root string) (*Project, error) {
	p := &Project{}

	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		p.HasPackageJSON = true
		var pkg packageJSON
		if err := json.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("parsing package.json: %w", err)
		}
		deps := make(map[string]bool)
		for _, m := range []map[string]string{pkg.Dependencies, pkg.DevDependencies, pkg.PeerDeps} {
			for name := range m {
				deps[name] = true
			}
		}
		for name := range deps {
			if strings.HasPrefix(name, "@spoosh/") {
				p.SpooshPackages = append(p.SpooshPackages, name)
			}
		}
		sort.Strings(p.SpooshPackages)
		for _, m := range markers {
			if deps[m.dep] {
				p.Framework = m.framework
				break
			}
		}
	}

	if p.Framework == "" {
		for name, fw := range workspaceFiles {
			if _, err := os.Stat(filepath.Join(root, name)); err == nil {
				p.Framework = fw
				break
			}
		}
	}

	return p, nil
}
