package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DerFlash/go-binderpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// Config holds all tool configuration.
type Config struct {
	CacheDir    string   `yaml:"cacheDir"`    // artwork cache root (default "cache")
	CacheBound  int      `yaml:"cacheBound"`  // in-memory entry limit (0 = library default)
	LogoDir     string   `yaml:"logoDir"`     // inline logo assets
	FontDirs    []string `yaml:"fontDirs"`    // extra font search directories
	StringsFile string   `yaml:"stringsFile"` // string-table YAML (empty = echo keys)
	OutputDir   string   `yaml:"outputDir"`   // default output directory
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		CacheDir: "cache",
		LogoDir:  filepath.Join("assets", "logos"),
	}
}

// LoadConfig loads configuration from a file path or a config name.
// A string containing a path separator is treated as a path; otherwise it is
// searched as <name>.yaml / <name>.yml in the working directory and in the
// user config directory. Returns an error if nothing is found.
func LoadConfig(nameOrPath string) (*Config, error) {
	var configPath string
	if strings.ContainsAny(nameOrPath, "/\\") {
		configPath = nameOrPath
	} else {
		p, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = p
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/binderpdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	tried := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		local := name + ext
		if fileExists(local) {
			return local, nil
		}
		tried = append(tried, local)
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			p := filepath.Join(userDir, "binderpdf", name+ext)
			if fileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
