// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file ($XDG_CONFIG_HOME/doit/doit.toml or the OS equivalent)
// 3. Project config file (./doit.toml), or the file named by -config / DOIT_CONFIG
// 4. Environment variables (DOIT_*), after loading ./.env if present
// 5. CLI flags
//
// Each level overrides the previous one.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultTheme        = "classic"
	DefaultIDStrategy   = "uuid"
	DefaultLogLevel     = "info"
	DefaultExportDir    = "."
	DefaultExportFormat = "json"

	fileName = "doit.toml"
	appDir   = "doit"
)

var (
	themes        = []string{"classic", "neon", "mono"}
	idStrategies  = []string{"uuid", "counter"}
	exportFormats = []string{"json", "yaml"}
	logLevels     = []string{"trace", "debug", "info", "warn", "error", "disabled"}
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the effective configuration of one run.
type Config struct {
	Theme        string `toml:"theme"`
	IDStrategy   string `toml:"id_strategy"`
	LogFile      string `toml:"log_file"`
	LogLevel     string `toml:"log_level"`
	ExportDir    string `toml:"export_dir"`
	ExportFormat string `toml:"export_format"`
	Splash       bool   `toml:"splash"`

	// Files lists the config files that were read, lowest priority first.
	Files []string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.Theme = DefaultTheme
	cfg.IDStrategy = DefaultIDStrategy
	cfg.LogLevel = DefaultLogLevel
	cfg.ExportDir = DefaultExportDir
	cfg.ExportFormat = DefaultExportFormat
	cfg.Splash = true
}

// Load builds the configuration. Flags are registered on flags and parsed from
// args; the caller reads the remaining positional arguments from flags.Args().
func Load(flags *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if p := findUserConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}

	if p := findProjectConfigFile(args); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", p, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, flags, args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := finalize(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func loadConfigFile(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return err
	}
	cfg.Files = append(cfg.Files, path)
	return nil
}

func findUserConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, appDir, fileName)
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// findProjectConfigFile returns the path named by -config or DOIT_CONFIG,
// or ./doit.toml when it exists.
func findProjectConfigFile(args []string) string {
	if p := configFlag(args); p != "" {
		return expandPath(p)
	}
	if p := os.Getenv("DOIT_CONFIG"); p != "" {
		return expandPath(p)
	}
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}
	return ""
}

// configFlag pre-scans args for -config so the file can be read before the
// other flags are applied on top of it.
func configFlag(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		if !strings.HasPrefix(a, "-") {
			continue
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("DOIT_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("DOIT_IDS"); v != "" {
		cfg.IDStrategy = v
	}
	if v := os.Getenv("DOIT_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DOIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DOIT_EXPORT_DIR"); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv("DOIT_EXPORT_FORMAT"); v != "" {
		cfg.ExportFormat = v
	}
	if v := os.Getenv("DOIT_SPLASH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: DOIT_SPLASH %q, want true or false", ErrInvalid, v)
		}
		cfg.Splash = b
	}
	return nil
}

func parseFlags(cfg *Config, set *flag.FlagSet, args []string) error {
	if set == nil {
		set = flag.NewFlagSet("doit", flag.ContinueOnError)
	}
	var ignored string
	set.StringVar(&ignored, "config", "", "Path to a config file")
	set.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme: classic, neon or mono")
	set.StringVar(&cfg.IDStrategy, "ids", cfg.IDStrategy, "Identifier strategy: uuid or counter")
	set.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write JSON logs to this file")
	set.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	set.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "Directory for exported snapshots")
	set.StringVar(&cfg.ExportFormat, "export-format", cfg.ExportFormat, "Export format: json or yaml")
	set.BoolVar(&cfg.Splash, "splash", cfg.Splash, "Show the splash screen")
	return set.Parse(args)
}

func finalize(cfg *Config) error {
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.IDStrategy = strings.ToLower(strings.TrimSpace(cfg.IDStrategy))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.ExportFormat = strings.ToLower(strings.TrimSpace(cfg.ExportFormat))
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.ExportDir = expandPath(cfg.ExportDir)

	checks := []struct {
		key, value string
		allowed    []string
	}{
		{"theme", cfg.Theme, themes},
		{"id_strategy", cfg.IDStrategy, idStrategies},
		{"log_level", cfg.LogLevel, logLevels},
		{"export_format", cfg.ExportFormat, exportFormats},
	}
	for _, c := range checks {
		if !slices.Contains(c.allowed, c.value) {
			return fmt.Errorf("%w: %s %q, want one of %s", ErrInvalid, c.key, c.value, strings.Join(c.allowed, ", "))
		}
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = DefaultExportDir
	}
	return nil
}

// expandPath expands ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, p[1:])
	}
	return p
}

// String renders the effective configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err.Error()
	}
	return buf.String()
}
