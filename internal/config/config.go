package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides, e.g. CONTEXERE_TIMEZONE
const EnvPrefix = "CONTEXERE_"

// DefaultDirectory is the location used when none is given
const DefaultDirectory = "."

// Config holds the settings shared by every entry point
type Config struct {
	Directory string `koanf:"directory"`
	Timezone  string `koanf:"timezone"`
	Seconds   bool   `koanf:"seconds"`
	DataDir   string `koanf:"data_dir"`
	LogLevel  string `koanf:"log_level"`
	LogFile   string `koanf:"log_file"` // TUI only; empty discards logs
	Editor    string `koanf:"editor"`   // wins over $VISUAL and $EDITOR
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Directory: DefaultDirectory,
		Timezone:  "UTC",
		DataDir:   DefaultDataDir(),
		LogLevel:  "warn",
	}
}

// DefaultDataDir returns $XDG_DATA_HOME/contexere
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "contexere")
}

// DefaultPath returns $XDG_CONFIG_HOME/contexere/config.yaml
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "contexere", "config.yaml")
}

// Load reads defaults, then the YAML file at path, then CONTEXERE_* env vars.
// An empty path reads DefaultPath() when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := Default()
	if err := k.Load(mapProvider{
		"directory": defaults.Directory,
		"timezone":  defaults.Timezone,
		"seconds":   defaults.Seconds,
		"data_dir":  defaults.DataDir,
		"log_level": defaults.LogLevel,
		"log_file":  defaults.LogFile,
		"editor":    defaults.Editor,
	}, nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if explicit || !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load config file: %w", err)
	}

	// CONTEXERE_DATA_DIR -> data_dir
	transform := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", transform), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean warn.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger writing to w at the configured level
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(c.LogLevel)}))
}

// mapProvider loads a plain map into koanf
type mapProvider map[string]any

func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: map provider does not support ReadBytes")
}

func (m mapProvider) Read() (map[string]any, error) {
	return m, nil
}
