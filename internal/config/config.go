package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
)

// EnvConfigPath overrides the config file location
const EnvConfigPath = "WEEKLOG_CONFIG"

// Config is the persisted weeklog configuration
type Config struct {
	// DatabasePath may contain $VAR, ${VAR}, %VAR% or a leading ~
	DatabasePath string `json:"database_path"`
}

// DefaultPath returns the config file location: $WEEKLOG_CONFIG or ~/.weeklog/config.json
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".weeklog", "config.json"), nil
}

// Load reads the config file. A missing file yields an empty config.
func Load(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config with dbPath stored in portable form and returns it
func Save(path, dbPath string) (Config, error) {
	cfg := Config{DatabasePath: Portable(dbPath)}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return cfg, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return cfg, err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return cfg, fmt.Errorf("failed to write config: %w", err)
	}
	return cfg, nil
}

// ResolvedPath returns DatabasePath with placeholders expanded
func (c Config) ResolvedPath() string {
	return Expand(c.DatabasePath)
}

// homePlaceholder is what the home directory is replaced with on save
func homePlaceholder() string {
	if runtime.GOOS == "windows" {
		return "%USERPROFILE%"
	}
	return "$HOME"
}

// Portable normalises slashes and replaces the home directory prefix with a placeholder
func Portable(path string) string {
	if path == "" {
		return ""
	}
	path = filepath.ToSlash(path)

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return path
	}
	homeDir = strings.TrimSuffix(filepath.ToSlash(homeDir), "/")

	if path == homeDir || strings.HasPrefix(path, homeDir+"/") {
		return homePlaceholder() + path[len(homeDir):]
	}
	return path
}

var windowsVar = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Expand substitutes $VAR, ${VAR}, %VAR% and a leading ~.
// Unknown %VAR% references are left untouched.
func Expand(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, ok := lookupEnv("HOME"); ok {
			path = home + path[1:]
		}
	}

	path = windowsVar.ReplaceAllStringFunc(path, func(ref string) string {
		if value, ok := lookupEnv(ref[1 : len(ref)-1]); ok {
			return value
		}
		return ref
	})

	path = os.Expand(path, func(name string) string {
		value, _ := lookupEnv(name)
		return value
	})

	return filepath.FromSlash(path)
}

// lookupEnv resolves a variable, falling back to the user's home
// directory for HOME and USERPROFILE so configs move between systems
func lookupEnv(name string) (string, bool) {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value, true
	}
	switch strings.ToUpper(name) {
	case "HOME", "USERPROFILE":
		if homeDir, err := os.UserHomeDir(); err == nil {
			return homeDir, true
		}
	}
	return "", false
}
