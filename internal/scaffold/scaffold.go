// Package scaffold writes spk's own project files and rendered component
// templates to disk.
package scaffold

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jorge-barreto/spk/internal/config"
	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/fileblocks"
	"github.com/jorge-barreto/spk/internal/templates"
	"github.com/jorge-barreto/spk/internal/ux"
	"go.uber.org/zap"
)

// ErrPartial is returned when asked to write a render with unresolved
// placeholders.
var ErrPartial = errors.New("render has unresolved placeholders")

// File is one file produced from a rendered template.
type File struct {
	Path    string
	Content string
}

// Init creates a new .spk/ directory with a config for framework.
func Init(targetDir, framework, outDir string, w io.Writer) error {
	spkDir := filepath.Join(targetDir, config.Dir)
	if _, err := os.Stat(spkDir); err == nil {
		return fmt.Errorf("%s directory already exists in %s", config.Dir, targetDir)
	}

	if !content.ValidFramework(framework) {
		return fmt.Errorf("unknown framework %q (must be %s)", framework, strings.Join(content.Frameworks, " or "))
	}
	data, err := config.Marshal(&config.Config{Framework: framework, OutDir: outDir})
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(spkDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", config.Dir, err)
	}
	if err := os.WriteFile(config.Path(targetDir), data, 0644); err != nil {
		return fmt.Errorf("writing config.yaml: %w", err)
	}
	if err := os.WriteFile(filepath.Join(spkDir, ".gitignore"), []byte("history.json\n"), 0644); err != nil {
		return fmt.Errorf("writing %s/.gitignore: %w", config.Dir, err)
	}

	fmt.Fprintf(w, "\n%s%s✓ Initialized %s/ directory%s\n\n", ux.Bold, ux.Green, config.Dir, ux.Reset)
	fmt.Fprintf(w, "  Framework: %s%s%s\n", ux.Cyan, framework, ux.Reset)
	fmt.Fprintf(w, "  Created:\n")
	fmt.Fprintf(w, "    %s%s/config.yaml%s  (framework, out-dir, default params)\n\n", ux.Cyan, config.Dir, ux.Reset)
	fmt.Fprintf(w, "  Next steps:\n")
	fmt.Fprintf(w, "    1. Run %sspk docs%s for an overview\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    2. Run %sspk templates%s to see component types\n", ux.Cyan, ux.Reset)
	fmt.Fprintf(w, "    3. Run %sspk gen -e users -w list UserList%s to write into %s\n\n", ux.Cyan, ux.Reset, outDir)
	return nil
}

// Files lists the files a rendered template describes. Templates with
// file= blocks yield one file per block; others yield a single file named
// by the template's output pattern.
func Files(out templates.RenderedOutput) ([]File, error) {
	if out.Partial() {
		return nil, fmt.Errorf("%w: %s", ErrPartial, strings.Join(out.Unresolved, ", "))
	}
	blocks := out.Files
	if len(blocks) == 0 {
		if out.Output == "" {
			return nil, fmt.Errorf("template %q has no output file name", out.Type)
		}
		return []File{{Path: out.Output, Content: out.Source}}, nil
	}
	files := make([]File, 0, len(blocks))
	seen := make(map[string]bool)
	for _, b := range blocks {
		if seen[b.Path] {
			return nil, fmt.Errorf("template %q writes %s twice", out.Type, b.Path)
		}
		seen[b.Path] = true
		files = append(files, File{Path: b.Path, Content: b.Content})
	}
	return files, nil
}

// Write writes every file of a rendered template under dir. Existing files
// are left untouched unless force is set; the check happens before anything
// is written. Returns the written paths.
func Write(out templates.RenderedOutput, dir string, force bool) ([]string, error) {
	files, err := Files(out)
	if err != nil {
		return nil, err
	}

	targets := make([]string, len(files))
	for i, f := range files {
		target, err := fileblocks.Target(dir, f.Path)
		if err != nil {
			return nil, err
		}
		if !force {
			if _, err := os.Stat(target); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", target)
			}
		}
		targets[i] = target
	}

	var written []string
	for i, f := range files {
		if err := os.MkdirAll(filepath.Dir(targets[i]), 0755); err != nil {
			return written, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(targets[i], []byte(f.Content), 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", f.Path, err)
		}
		zap.L().Debug("scaffold file written", zap.String("path", targets[i]))
		written = append(written, targets[i])
	}
	return written, nil
}
