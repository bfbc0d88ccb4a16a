// Package content loads the static topic and template tables for each
// framework target. The built-in tables are embedded in the binary; a
// project can point spk at a directory with the same layout instead.
//
// Layout, per framework:
//
//	<framework>/topics.yaml
//	<framework>/fragments/<id>.md
//	<framework>/templates.yaml
//	<framework>/templates/<file>
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	React   = "react"
	Angular = "angular"
)

// Frameworks lists every supported framework target in display order.
var Frameworks = []string{React, Angular}

// ValidFramework reports whether name is a supported framework target.
func ValidFramework(name string) bool {
	for _, f := range Frameworks {
		if f == name {
			return true
		}
	}
	return false
}

//go:embed library
var library embed.FS

// Embedded returns the built-in content tree rooted at the framework
// directories.
func Embedded() fs.FS {
	sub, err := fs.Sub(library, "library")
	if err != nil {
		panic(err) // the directory is embedded at compile time
	}
	return sub
}

// FragmentSpec is one documentation fragment as declared in topics.yaml.
type FragmentSpec struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Summary  string   `yaml:"summary"`
	Keywords []string `yaml:"keywords"`
	Related  []string `yaml:"related"`
	Body     string   `yaml:"-"`
}

// TemplateSpec is one component template as declared in templates.yaml.
type TemplateSpec struct {
	Type         string   `yaml:"type"`
	Description  string   `yaml:"description"`
	File         string   `yaml:"file"`
	Output       string   `yaml:"output"`
	Placeholders []string `yaml:"placeholders"`
	Body         string   `yaml:"-"`
}

// Bundle holds the raw tables for one framework.
type Bundle struct {
	Framework string
	Fragments []FragmentSpec
	Templates []TemplateSpec
}

type topicsFile struct {
	Fragments []FragmentSpec `yaml:"fragments"`
}

type templatesFile struct {
	Templates []TemplateSpec `yaml:"templates"`
}

// Load reads the topic and template tables for framework from fsys.
func Load(fsys fs.FS, framework string) (*Bundle, error) {
	if !ValidFramework(framework) {
		return nil, fmt.Errorf("content: unknown framework %q (must be %s)", framework, strings.Join(Frameworks, " or "))
	}

	var topics topicsFile
	if err := readYAML(fsys, path.Join(framework, "topics.yaml"), &topics); err != nil {
		return nil, err
	}
	for i := range topics.Fragments {
		f := &topics.Fragments[i]
		if f.ID == "" {
			return nil, fmt.Errorf("content: %s/topics.yaml: fragment %d: 'id' is required", framework, i+1)
		}
		body, err := fs.ReadFile(fsys, path.Join(framework, "fragments", f.ID+".md"))
		if err != nil {
			return nil, fmt.Errorf("content: fragment %q: %w", f.ID, err)
		}
		f.Body = string(body)
	}

	var templates templatesFile
	if err := readYAML(fsys, path.Join(framework, "templates.yaml"), &templates); err != nil {
		return nil, err
	}
	for i := range templates.Templates {
		t := &templates.Templates[i]
		if t.File == "" {
			return nil, fmt.Errorf("content: %s/templates.yaml: template %d: 'file' is required", framework, i+1)
		}
		body, err := fs.ReadFile(fsys, path.Join(framework, "templates", t.File))
		if err != nil {
			return nil, fmt.Errorf("content: template %q: %w", t.Type, err)
		}
		t.Body = string(body)
	}

	zap.L().Debug("content loaded",
		zap.String("framework", framework),
		zap.Int("fragments", len(topics.Fragments)),
		zap.Int("templates", len(templates.Templates)))

	return &Bundle{
		Framework: framework,
		Fragments: topics.Fragments,
		Templates: templates.Templates,
	}, nil
}

func readYAML(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("content: parsing %s: %w", name, err)
	}
	return nil
}
