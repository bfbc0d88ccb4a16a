package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir is the per-project directory holding config.yaml and history.json.
const Dir = ".spk"

type Config struct {
	Framework  string            `yaml:"framework"`
	OutDir     string            `yaml:"out-dir,omitempty"`
	ContentDir string            `yaml:"content-dir,omitempty"`
	Params     map[string]string `yaml:"params,omitempty"`
}

// Path returns the config file location under projectRoot.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, "config.yaml")
}

// Load reads a YAML config file and returns a validated Config.
func Load(path, projectRoot string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg, projectRoot); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the validated configuration used when a project has no
// config file.
func Default(projectRoot string) *Config {
	cfg := &Config{}
	_ = Validate(cfg, projectRoot) // an empty config always validates
	return cfg
}

// Marshal renders cfg as YAML for writing to disk.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
