package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Sohaib432002/Dashboard/internal/utils"
)

// EnvPrefix prefixes every environment override, e.g. DASHBOARD_DATASET.
const EnvPrefix = "DASHBOARD"

// Global configuration structure.
type Global struct {
	// Dataset is a .csv/.tsv/.xlsx path or an http(s) URL.
	Dataset string `mapstructure:"dataset" yaml:"dataset"`
	// Sheet selects the workbook sheet for .xlsx datasets.
	Sheet  string `mapstructure:"sheet" yaml:"sheet"`
	Format string `mapstructure:"format" yaml:"format"`

	HTTPTimeoutSec int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`

	ExportDir     string `mapstructure:"export_dir" yaml:"export_dir"`
	ExportWorkers int    `mapstructure:"export_workers" yaml:"export_workers"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Keys lists the settable configuration keys in display order.
var Keys = []string{"dataset", "sheet", "format", "http_timeout_sec", "export_dir", "export_workers", "log_level"}

// Dir returns ~/.dashboard.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".dashboard"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dashboard/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// LoadDotEnv loads ./.env into the process environment when present.
// Variables already set are not overridden.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("dataset", "")
	v.SetDefault("sheet", "")
	v.SetDefault("format", "json")
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("export_dir", "dashboard-export")
	v.SetDefault("export_workers", 4)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" && !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Set assigns one key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "dataset":
		c.Dataset = val
	case "sheet":
		c.Sheet = val
	case "format":
		switch strings.ToLower(val) {
		case "json", "yaml", "markdown", "html":
			c.Format = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid format: %s (use json, yaml, markdown or html)", val)
		}
	case "http_timeout_sec":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for http_timeout_sec: %v", val)
		}
		c.HTTPTimeoutSec = i
	case "export_dir":
		c.ExportDir = val
	case "export_workers":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for export_workers: %v", val)
		}
		c.ExportWorkers = i
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug, info, warn or error)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

// Get returns the string form of key.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "dataset":
		return c.Dataset, nil
	case "sheet":
		return c.Sheet, nil
	case "format":
		return c.Format, nil
	case "http_timeout_sec":
		return strconv.Itoa(c.HTTPTimeoutSec), nil
	case "export_dir":
		return c.ExportDir, nil
	case "export_workers":
		return strconv.Itoa(c.ExportWorkers), nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", fmt.Errorf("unknown key: %s", key)
}
