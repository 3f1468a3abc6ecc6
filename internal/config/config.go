// Package config loads the formdef CLI configuration.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formdef/pkg/stores"
)

// Config is the on-disk configuration.
//
//	stores:
//	  - name: wstore
//	    displayName: WStore
//	storesFile: ./stores.yaml
//	logging:
//	  level: debug
//	  pretty: true
type Config struct {
	Stores     []stores.Store `yaml:"stores"`
	StoresFile string         `yaml:"storesFile"`
	Logging    LoggingConfig  `yaml:"logging"`

	dir string
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// ParseLevel maps Level onto zerolog, defaulting to info.
func (l LoggingConfig) ParseLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Logging: LoggingConfig{Level: "info"}}
}

// Load reads and parses a YAML configuration file. Environment variables in
// the form ${VAR} are expanded first. Relative storesFile paths resolve
// against the config file's directory.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := LoadFromReader(file)
	if err != nil {
		return nil, err
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// LoadFromReader parses configuration from r.
func LoadFromReader(r io.Reader) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("config: read: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expandEnv(string(content))), cfg); err != nil {
		return nil, fmt.Errorf("config: parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	verr := &ValidationError{}
	if len(c.Stores) > 0 && strings.TrimSpace(c.StoresFile) != "" {
		verr.Addf("stores and storesFile are mutually exclusive")
	}
	if lvl := strings.TrimSpace(c.Logging.Level); lvl != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(lvl)); err != nil {
			verr.Addf("logging.level %q: %v", lvl, err)
		}
	}
	return verr.ToError()
}

// Catalog builds the store catalogue from the inline list or storesFile.
func (c *Config) Catalog() (*stores.Catalog, error) {
	file := strings.TrimSpace(c.StoresFile)
	if file == "" {
		return stores.NewCatalog(c.Stores...)
	}
	if !filepath.IsAbs(file) && c.dir != "" {
		file = filepath.Join(c.dir, file)
	}
	return stores.LoadFile(file)
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references with their environment values. Bare
// $VAR text is left alone so values such as prices keep their dollar signs.
func expandEnv(content string) string {
	return envRef.ReplaceAllStringFunc(content, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}
