package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "QQBOOK"
	ConfigName     = "qqbook"
	DefaultLogFile = "qqbook.log"
)

type (
	Config struct {
		Exporter
		Output
		Logging

		// File is the config file that was read, empty when only defaults
		// and environment variables were used.
		File string
	}

	// Exporter locates the external exporter and the runtime that runs it.
	Exporter struct {
		RuntimeBinary string        // Name on PATH or a path, relative to the start dir, e.g. "node"
		Root          string        // Installation directory of the exporter
		EntryPoint    string        // Relative to Root
		Manifest      string        // Relative to Root
		CheckTimeout  time.Duration // Bound for the runtime version probe
	}
	Output struct {
		DefaultSubdir string // Output goes to <start dir>/<DefaultSubdir>/<book id>
	}
	Logging struct {
		Dir   string
		Level string
	}
)

// EntryPointPath returns the exporter script location.
func (e Exporter) EntryPointPath() string {
	return filepath.Join(e.Root, e.EntryPoint)
}

// ManifestPath returns the exporter's package manifest location.
func (e Exporter) ManifestPath() string {
	return filepath.Join(e.Root, e.Manifest)
}

func defaultExporterRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "QQBookExporter"
	}
	return filepath.Join(home, "QQBookExporter")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("runtime_binary", "node")
	v.SetDefault("exporter_root", defaultExporterRoot())
	v.SetDefault("entry_point", "exporter.js")
	v.SetDefault("manifest", "package.json")
	v.SetDefault("check_timeout", "5s")
	v.SetDefault("default_output_subdir", "out")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", "info")
}

// Load reads configuration from defaults, an optional config file and
// QQBOOK_* environment variables, in increasing order of precedence.
// When path is empty, qqbook.{yaml,toml,json} is looked up in the working
// directory and in $HOME/.config/qqbook; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	cfg := &Config{
		Exporter: Exporter{
			RuntimeBinary: v.GetString("runtime_binary"),
			Root:          v.GetString("exporter_root"),
			EntryPoint:    v.GetString("entry_point"),
			Manifest:      v.GetString("manifest"),
			CheckTimeout:  v.GetDuration("check_timeout"),
		},
		Output: Output{
			DefaultSubdir: v.GetString("default_output_subdir"),
		},
		Logging: Logging{
			Dir:   v.GetString("log_dir"),
			Level: v.GetString("log_level"),
		},
		File: v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first missing or out of range setting.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"runtime_binary", c.RuntimeBinary},
		{"exporter_root", c.Root},
		{"entry_point", c.EntryPoint},
		{"manifest", c.Manifest},
		{"default_output_subdir", c.DefaultSubdir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("invalid config: %s must not be empty", r.key)
		}
	}
	if c.CheckTimeout <= 0 {
		return fmt.Errorf("invalid config: check_timeout must be positive, got %s", c.CheckTimeout)
	}
	return nil
}

// Settings returns the effective settings keyed like the config file.
func (c *Config) Settings() map[string]string {
	return map[string]string{
		"runtime_binary":        c.RuntimeBinary,
		"exporter_root":         c.Root,
		"entry_point":           c.EntryPoint,
		"manifest":              c.Manifest,
		"check_timeout":         c.CheckTimeout.String(),
		"default_output_subdir": c.DefaultSubdir,
		"log_dir":               c.Logging.Dir,
		"log_level":             c.Level,
	}
}
