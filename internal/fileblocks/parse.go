package fileblocks

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// Block is one file extracted from a multi-file template body.
type Block struct {
	Path    string // e.g. "user-list.component.ts"
	Lang    string // fence info language, may be empty
	Content string // content between the fences, with a trailing newline
}

var fenceOpenRe = regexp.MustCompile("^```(\\w*)\\s*file=(\\S+)")

// Parse extracts fenced code blocks annotated with file= from text.
// It recognizes opening fences like:
//
//	```ts file=user-list.component.ts
//	```file=README.md
//	```html file=user-list.component.html
//
// Fences without file= and unclosed blocks are skipped. Returns blocks in
// order of appearance.
func Parse(text string) []Block {
	lines := strings.Split(text, "\n")
	var blocks []Block
	var current *Block
	var body []string

	for _, line := range lines {
		if current != nil {
			if strings.TrimSpace(line) == "```" {
				current.Content = strings.Join(body, "\n")
				if current.Content != "" {
					current.Content += "\n"
				}
				blocks = append(blocks, *current)
				current = nil
				body = nil
				continue
			}
			body = append(body, line)
			continue
		}

		m := fenceOpenRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			current = &Block{Lang: m[1], Path: m[2]}
			body = nil
		}
	}

	return blocks
}

// Target joins a block path onto dir, rejecting absolute paths, paths
// containing whitespace and paths that escape dir.
func Target(dir, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty file path")
	}
	if strings.IndexFunc(path, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("file path %q contains whitespace", path)
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("file path %q must be relative", path)
	}
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file path %q escapes the output directory", path)
	}
	return filepath.Join(dir, clean), nil
}
