package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_EmptyConfigDefaults(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{}
	if err := Validate(cfg, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Framework != "" {
		t.Fatalf("Framework = %q, want empty", cfg.Framework)
	}
	if cfg.OutDir != root {
		t.Fatalf("OutDir = %q, want %q", cfg.OutDir, root)
	}
	if cfg.Params == nil {
		t.Fatal("Params should be initialized")
	}
}

func TestValidate_FrameworkNormalized(t *testing.T) {
	cfg := &Config{Framework: " Angular "}
	if err := Validate(cfg, t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Framework != "angular" {
		t.Fatalf("Framework = %q", cfg.Framework)
	}
}

func TestValidate_UnknownFramework(t *testing.T) {
	cfg := &Config{Framework: "vue"}
	if err := Validate(cfg, t.TempDir()); err == nil || !strings.Contains(err.Error(), "unknown framework") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_RelativeOutDir(t *testing.T) {
	root := t.TempDir()
	cfg := &Config{OutDir: "src/app"}
	if err := Validate(cfg, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := filepath.Join(root, "src", "app"); cfg.OutDir != want {
		t.Fatalf("OutDir = %q, want %q", cfg.OutDir, want)
	}
}

func TestValidate_AbsoluteOutDirKept(t *testing.T) {
	abs := t.TempDir()
	cfg := &Config{OutDir: abs}
	if err := Validate(cfg, t.TempDir()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutDir != abs {
		t.Fatalf("OutDir = %q, want %q", cfg.OutDir, abs)
	}
}

func TestValidate_ContentDirMissing(t *testing.T) {
	cfg := &Config{ContentDir: "nope"}
	if err := Validate(cfg, t.TempDir()); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ContentDirIsFile(t *testing.T) {
	root := t.TempDir()
	os.WriteFile(filepath.Join(root, "content"), []byte("x"), 0644)
	cfg := &Config{ContentDir: "content"}
	if err := Validate(cfg, root); err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Fatalf("got %v", err)
	}
}

func TestValidate_ContentDirExists(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, "content"), 0755)
	cfg := &Config{ContentDir: "content"}
	if err := Validate(cfg, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ContentDir != filepath.Join(root, "content") {
		t.Fatalf("ContentDir = %q", cfg.ContentDir)
	}
}

func TestValidate_InvalidParamName(t *testing.T) {
	cfg := &Config{Params: map[string]string{"endpoint": "users", "file-name": "x"}}
	if err := Validate(cfg, t.TempDir()); err == nil || !strings.Contains(err.Error(), `"file-name" is not a valid placeholder name`) {
		t.Fatalf("got %v", err)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, Dir), 0755)
	data := `framework: react
out-dir: src/components
params:
  endpoint: users
`
	os.WriteFile(Path(root), []byte(data), 0644)

	cfg, err := Load(Path(root), root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Framework != "react" {
		t.Fatalf("Framework = %q", cfg.Framework)
	}
	if cfg.OutDir != filepath.Join(root, "src", "components") {
		t.Fatalf("OutDir = %q", cfg.OutDir)
	}
	if cfg.Params["endpoint"] != "users" {
		t.Fatalf("Params = %v", cfg.Params)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	os.MkdirAll(filepath.Join(root, Dir), 0755)
	os.WriteFile(Path(root), []byte("params: [\n"), 0644)
	if _, err := Load(Path(root), root); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	root := t.TempDir()
	data, err := Marshal(&Config{Framework: "angular", OutDir: "src/app"})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if !strings.Contains(string(data), "out-dir: src/app") {
		t.Fatalf("unexpected YAML:\n%s", data)
	}
	os.MkdirAll(filepath.Join(root, Dir), 0755)
	os.WriteFile(Path(root), data, 0644)
	cfg, err := Load(Path(root), root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Framework != "angular" {
		t.Fatalf("Framework = %q", cfg.Framework)
	}
}

func TestDefault(t *testing.T) {
	root := t.TempDir()
	cfg := Default(root)
	if cfg.OutDir != root || cfg.Params == nil {
		t.Fatalf("got %+v", cfg)
	}
}
