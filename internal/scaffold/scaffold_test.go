package scaffold

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/spk/internal/config"
	"github.com/jorge-barreto/spk/internal/content"
	"github.com/jorge-barreto/spk/internal/fileblocks"
	"github.com/jorge-barreto/spk/internal/templates"
)

func catalog(t *testing.T, framework string) *templates.Catalog {
	t.Helper()
	b, err := content.Load(content.Embedded(), framework)
	if err != nil {
		t.Fatal(err)
	}
	c, err := templates.NewCatalog(framework, b.Templates)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestInit_CreatesDirectoryStructure(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "angular", "src/app", io.Discard); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	for _, path := range []string{
		config.Dir,
		filepath.Join(config.Dir, "config.yaml"),
		filepath.Join(config.Dir, ".gitignore"),
	} {
		if _, err := os.Stat(filepath.Join(dir, path)); err != nil {
			t.Fatalf("%s not created: %v", path, err)
		}
	}
}

func TestInit_GeneratedConfigIsValid(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "angular", "src/app", io.Discard); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	cfg, err := config.Load(config.Path(dir), dir)
	if err != nil {
		t.Fatalf("config.Load failed on generated config: %v", err)
	}
	if cfg.Framework != "angular" {
		t.Fatalf("Framework = %q", cfg.Framework)
	}
	if cfg.OutDir != filepath.Join(dir, "src", "app") {
		t.Fatalf("OutDir = %q", cfg.OutDir)
	}
}

func TestInit_FailsIfDirExists(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, config.Dir), 0755); err != nil {
		t.Fatal(err)
	}
	err := Init(dir, "react", ".", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected error containing 'already exists', got: %v", err)
	}
}

func TestInit_UnknownFramework(t *testing.T) {
	err := Init(t.TempDir(), "vue", ".", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "unknown framework") {
		t.Fatalf("got %v", err)
	}
}

func TestWrite_SingleFileTemplate(t *testing.T) {
	out, err := catalog(t, content.React).Render("list", map[string]string{"componentName": "Widget", "endpoint": "widgets"})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	written, err := Write(out, dir, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := filepath.Join(dir, "Widget.tsx")
	if len(written) != 1 || written[0] != want {
		t.Fatalf("written = %v, want [%s]", written, want)
	}
	data, _ := os.ReadFile(want)
	if string(data) != out.Source {
		t.Fatal("file content differs from rendered source")
	}
}

func TestWrite_MultiFileTemplate(t *testing.T) {
	params := templates.DeriveParams("UserList")
	params["componentName"] = "UserList"
	params["endpoint"] = "users"
	out, err := catalog(t, content.Angular).Render("list", params)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	written, err := Write(out, dir, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("expected 2 files, got %v", written)
	}
	ts, err := os.ReadFile(filepath.Join(dir, "user-list.component.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(ts), "export class UserListComponent") {
		t.Fatalf("unexpected ts:\n%s", ts)
	}
	if strings.Contains(string(ts), "```") {
		t.Fatal("fence markers leaked into file")
	}
	if _, err := os.Stat(filepath.Join(dir, "user-list.component.html")); err != nil {
		t.Fatalf("html not written: %v", err)
	}
}

func TestWrite_RefusesPartial(t *testing.T) {
	out, err := catalog(t, content.React).Render("detail", map[string]string{"componentName": "Widget"})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	_, err = Write(out, dir, false)
	if !errors.Is(err, ErrPartial) || !strings.Contains(err.Error(), "endpoint") {
		t.Fatalf("expected ErrPartial naming endpoint, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("partial render wrote files: %v", entries)
	}
}

func TestWrite_ExistingFile(t *testing.T) {
	out, err := catalog(t, content.React).Render("form", map[string]string{"componentName": "CreateUser", "endpoint": "users"})
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "CreateUser.tsx")
	os.WriteFile(target, []byte("keep"), 0644)

	if _, err := Write(out, dir, false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected already exists error, got %v", err)
	}
	data, _ := os.ReadFile(target)
	if string(data) != "keep" {
		t.Fatal("existing file was modified without force")
	}

	if _, err := Write(out, dir, true); err != nil {
		t.Fatalf("Write with force failed: %v", err)
	}
	data, _ = os.ReadFile(target)
	if string(data) != out.Source {
		t.Fatal("force did not overwrite")
	}
}

func TestFiles_RejectsEscapingPath(t *testing.T) {
	out := templates.RenderedOutput{Type: "list", Files: []fileblocks.Block{{Path: "../evil.ts", Content: "x\n"}}}
	if _, err := Write(out, t.TempDir(), false); err == nil || !strings.Contains(err.Error(), "escapes") {
		t.Fatalf("expected escape error, got %v", err)
	}
}

func TestFiles_DuplicatePath(t *testing.T) {
	out := templates.RenderedOutput{Type: "list", Files: []fileblocks.Block{
		{Path: "a.ts", Content: "x\n"},
		{Path: "a.ts", Content: "y\n"},
	}}
	if _, err := Files(out); err == nil || !strings.Contains(err.Error(), "twice") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func angularList(t *testing.T, params map[string]string) templates.RenderedOutput {
	t.Helper()
	out, err := catalog(t, content.Angular).Render("list", params)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestWrite_ValueCannotAddFiles(t *testing.T) {
	out := angularList(t, map[string]string{
		"componentName": "Widget",
		"endpoint":      "w\n```\n```ts file=evil.ts\nx",
		"fileName":      "widget",
		"selector":      "app-widget",
	})
	dir := t.TempDir()
	written, err := Write(out, dir, false)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	want := []string{filepath.Join(dir, "widget.component.ts"), filepath.Join(dir, "widget.component.html")}
	if len(written) != 2 || written[0] != want[0] || written[1] != want[1] {
		t.Fatalf("written = %v, want %v", written, want)
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.ts")); err == nil {
		t.Fatal("endpoint value created an extra file")
	}
	ts, _ := os.ReadFile(want[0])
	if !strings.Contains(string(ts), "file=evil.ts") {
		t.Fatal("endpoint value was not kept as file content")
	}
}

func TestWrite_FileNameWithWhitespace(t *testing.T) {
	out := angularList(t, map[string]string{
		"componentName": "Widget",
		"endpoint":      "widgets",
		"fileName":      "my widget",
		"selector":      "app-widget",
	})
	dir := t.TempDir()
	_, err := Write(out, dir, false)
	if err == nil || !strings.Contains(err.Error(), "whitespace") {
		t.Fatalf("expected whitespace error, got %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("files written despite bad path: %v", entries)
	}
}
