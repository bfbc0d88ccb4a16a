// Package templates holds the component template catalog and renders
// templates by literal placeholder substitution. Unlike topic resolution,
// template selection never falls back: an unknown type is an error.
package templates

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/fileblocks"
	"go.uber.org/zap"
)

// Types is the closed set of template type keywords.
var Types = []string{"list", "detail", "form", "infinite"}

// ErrUnknownTemplateType is wrapped by every UnknownTypeError.
var ErrUnknownTemplateType = errors.New("unknown template type")

// UnknownTypeError reports a type keyword outside the closed set.
type UnknownTypeError struct {
	Type  string
	Valid []string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown template type %q (valid types: %s)", e.Type, strings.Join(e.Valid, ", "))
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownTemplateType
}

// Template is a parameterized component scaffold.
type Template struct {
	Type         string
	Description  string
	Body         string
	Output       string   // file name pattern for single-file bodies
	Placeholders []string // sorted

	blocks []fileblocks.Block // file= blocks of Body, parsed before substitution
}

// RenderedOutput is the result of a render. A non-empty Unresolved means
// the render is partial and Source still contains those markers.
type RenderedOutput struct {
	Type       string
	Source     string
	Output     string
	Files      []fileblocks.Block // one per file= block of the template body
	Unresolved []string
}

// Partial reports whether any declared placeholder was left unresolved.
func (o RenderedOutput) Partial() bool {
	return len(o.Unresolved) > 0
}

// Catalog is an immutable type keyword to template table for one
// framework. It is safe for concurrent use.
type Catalog struct {
	framework string
	templates map[string]Template
}

// NewCatalog builds a catalog from loaded template specs. Every type in
// Types must be present exactly once, and each template's declared
// placeholders must match the tokens in its body and output pattern.
func NewCatalog(framework string, specs []content.TemplateSpec) (*Catalog, error) {
	c := &Catalog{
		framework: framework,
		templates: make(map[string]Template, len(specs)),
	}
	for _, s := range specs {
		typ := strings.ToLower(strings.TrimSpace(s.Type))
		if !isType(typ) {
			return nil, fmt.Errorf("templates: %s: %q is not a template type (must be one of %s)", framework, s.Type, strings.Join(Types, ", "))
		}
		if _, dup := c.templates[typ]; dup {
			return nil, fmt.Errorf("templates: %s: duplicate template %q", framework, typ)
		}
		t, err := newTemplate(typ, s)
		if err != nil {
			return nil, fmt.Errorf("templates: %s: %w", framework, err)
		}
		c.templates[typ] = t
	}
	for _, typ := range Types {
		if _, ok := c.templates[typ]; !ok {
			return nil, fmt.Errorf("templates: %s: missing template %q", framework, typ)
		}
	}
	return c, nil
}

func newTemplate(typ string, s content.TemplateSpec) (Template, error) {
	declared := make(map[string]bool, len(s.Placeholders))
	for _, p := range s.Placeholders {
		if !ValidName(p) {
			return Template{}, fmt.Errorf("template %q: invalid placeholder name %q", typ, p)
		}
		if declared[p] {
			return Template{}, fmt.Errorf("template %q: placeholder %q declared twice", typ, p)
		}
		declared[p] = true
	}

	used := Tokens(s.Body + "\n" + s.Output)
	var undeclared []string
	for _, name := range used {
		if !declared[name] {
			undeclared = append(undeclared, name)
		}
		delete(declared, name)
	}
	if len(undeclared) > 0 {
		return Template{}, fmt.Errorf("template %q: body uses undeclared placeholders: %s", typ, strings.Join(undeclared, ", "))
	}
	if len(declared) > 0 {
		var unused []string
		for name := range declared {
			unused = append(unused, name)
		}
		sort.Strings(unused)
		return Template{}, fmt.Errorf("template %q: declared placeholders not in body: %s", typ, strings.Join(unused, ", "))
	}

	blocks := fileblocks.Parse(s.Body)
	if s.Output == "" && len(blocks) == 0 {
		return Template{}, fmt.Errorf("template %q: needs an output pattern or file= blocks", typ)
	}

	return Template{
		Type:         typ,
		Description:  s.Description,
		Body:         s.Body,
		Output:       s.Output,
		Placeholders: used,
		blocks:       blocks,
	}, nil
}

// Framework returns the framework target this catalog serves.
func (c *Catalog) Framework() string {
	return c.framework
}

// Lookup returns the template for typeKeyword, matched case-insensitively
// after trimming surrounding whitespace.
func (c *Catalog) Lookup(typeKeyword string) (Template, error) {
	t, ok := c.templates[strings.ToLower(strings.TrimSpace(typeKeyword))]
	if !ok {
		return Template{}, &UnknownTypeError{Type: typeKeyword, Valid: c.Types()}
	}
	return t, nil
}

// Types returns the template type keywords in sorted order.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.templates))
	for typ := range c.templates {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

// Templates returns every template in the order of Types.
func (c *Catalog) Templates() []Template {
	out := make([]Template, 0, len(Types))
	for _, typ := range Types {
		out = append(out, c.templates[typ])
	}
	return out
}

// Render looks up typeKeyword and substitutes params into it.
func (c *Catalog) Render(typeKeyword string, params map[string]string) (RenderedOutput, error) {
	t, err := c.Lookup(typeKeyword)
	if err != nil {
		return RenderedOutput{}, err
	}
	out := t.Render(params)
	zap.L().Debug("template rendered",
		zap.String("framework", c.framework),
		zap.String("type", t.Type),
		zap.Strings("unresolved", out.Unresolved))
	return out, nil
}

// Render substitutes params into the template. Only declared placeholders
// are replaced, each by whole-token literal match in a single pass, so
// values are never re-scanned. Declared placeholders missing from params
// keep their marker and are listed in Unresolved. File blocks come from the
// unrendered body, so values can never add, split or rename blocks.
func (t Template) Render(params map[string]string) RenderedOutput {
	var pairs []string
	var unresolved []string
	for _, name := range t.Placeholders {
		v, ok := params[name]
		if !ok {
			unresolved = append(unresolved, name)
			continue
		}
		pairs = append(pairs, Token(name), v)
	}
	r := strings.NewReplacer(pairs...)
	var files []fileblocks.Block
	for _, b := range t.blocks {
		files = append(files, fileblocks.Block{
			Path:    r.Replace(b.Path),
			Lang:    b.Lang,
			Content: r.Replace(b.Content),
		})
	}
	return RenderedOutput{
		Type:       t.Type,
		Source:     r.Replace(t.Body),
		Output:     r.Replace(t.Output),
		Files:      files,
		Unresolved: unresolved,
	}
}

func isType(s string) bool {
	for _, t := range Types {
		if t == s {
			return true
		}
	}
	return false
}
