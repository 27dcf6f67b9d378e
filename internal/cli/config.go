// Package cli carries the pieces shared by the pythia command-line
// tools: configuration loading, diagnostic rendering, and version
// information.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/pythia-lang/pythia/internal/compat"
)

// ConfigFileName is looked up in the working directory and its
// ancestors.
const ConfigFileName = ".pythia.yaml"

// Config is the on-disk tool configuration.
type Config struct {
	// PythonVersion gates syntax: diagnostics are raised for
	// constructs newer than this release. Empty disables the gate.
	PythonVersion string `yaml:"python-version"`
	// Extensions selects which files a directory scan picks up.
	Extensions []string `yaml:"extensions"`
	// Exclude lists directory names skipped during scans.
	Exclude []string `yaml:"exclude"`
	// Jobs caps parallel file checks. Zero means GOMAXPROCS.
	Jobs int `yaml:"jobs"`
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".py", ".pyi"},
		Exclude:    []string{".git", "__pycache__", ".venv", "venv", "node_modules"},
	}
}

// LoadConfig reads a configuration file, filling unset fields with
// defaults. A missing file yields the defaults without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultConfig().Extensions
	}
	if cfg.PythonVersion != "" {
		if _, err := compat.ParseVersion(cfg.PythonVersion); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return cfg, nil
}

// FindConfig walks from dir toward the filesystem root and returns the
// first configuration file found, or "" when there is none.
func FindConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// TargetVersion resolves the configured gate, preferring the override
// from the command line. Nil means the gate is off.
func (c *Config) TargetVersion(override string) (*semver.Version, error) {
	spec := c.PythonVersion
	if override != "" {
		spec = override
	}
	if spec == "" {
		return nil, nil
	}
	return compat.ParseVersion(spec)
}

// WorkerCount resolves the Jobs setting against the host.
func (c *Config) WorkerCount() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, want := range c.Extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// Excluded reports whether a directory entry name is skipped.
func (c *Config) Excluded(name string) bool {
	for _, skip := range c.Exclude {
		if name == skip {
			return true
		}
	}
	return false
}
