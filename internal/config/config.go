package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DefaultStyle string `mapstructure:"default_style" yaml:"default_style"`
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	Theme        string `mapstructure:"theme" yaml:"theme"`
	MaxRows      int    `mapstructure:"max_rows" yaml:"max_rows"`

	// Logging
	LogLevel    string `mapstructure:"log_level" yaml:"log_level"`
	LogEncoding string `mapstructure:"log_encoding" yaml:"log_encoding"`

	// Chart-type detection thresholds
	BarCardinality   int `mapstructure:"bar_cardinality" yaml:"bar_cardinality"`
	BarMinRows       int `mapstructure:"bar_min_rows" yaml:"bar_min_rows"`
	GroupCardinality int `mapstructure:"group_cardinality" yaml:"group_cardinality"`

	// Charts
	HistogramBins int `mapstructure:"histogram_bins" yaml:"histogram_bins"`
	ChartWidth    int `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight   int `mapstructure:"chart_height" yaml:"chart_height"`
}

// Keys lists the settable keys in display order.
var Keys = []string{
	"default_style", "output_format", "theme", "max_rows",
	"log_level", "log_encoding",
	"bar_cardinality", "bar_min_rows", "group_cardinality",
	"histogram_bins", "chart_width", "chart_height",
}

// Dir returns ~/.plotease.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".plotease"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.plotease/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file (cfgFile or ~/.plotease/config.yaml) > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("PLOTEASE")
	v.AutomaticEnv()

	v.SetDefault("default_style", "full")
	v.SetDefault("output_format", "markdown")
	v.SetDefault("theme", "default")
	v.SetDefault("max_rows", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_encoding", "console")
	v.SetDefault("bar_cardinality", 20)
	v.SetDefault("bar_min_rows", 100)
	v.SetDefault("group_cardinality", 10)
	v.SetDefault("histogram_bins", 30)
	v.SetDefault("chart_width", 1024)
	v.SetDefault("chart_height", 512)

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
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Get returns the value of key as text.
func (c *Global) Get(key string) (string, error) {
	switch key {
	case "default_style":
		return c.DefaultStyle, nil
	case "output_format":
		return c.OutputFormat, nil
	case "theme":
		return c.Theme, nil
	case "max_rows":
		return strconv.Itoa(c.MaxRows), nil
	case "log_level":
		return c.LogLevel, nil
	case "log_encoding":
		return c.LogEncoding, nil
	case "bar_cardinality":
		return strconv.Itoa(c.BarCardinality), nil
	case "bar_min_rows":
		return strconv.Itoa(c.BarMinRows), nil
	case "group_cardinality":
		return strconv.Itoa(c.GroupCardinality), nil
	case "histogram_bins":
		return strconv.Itoa(c.HistogramBins), nil
	case "chart_width":
		return strconv.Itoa(c.ChartWidth), nil
	case "chart_height":
		return strconv.Itoa(c.ChartHeight), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// Set validates val and assigns it to key.
func (c *Global) Set(key, val string) error {
	switch key {
	case "default_style":
		s, err := oneOf(key, val, "full", "numeric", "categorical")
		if err != nil {
			return err
		}
		c.DefaultStyle = s
	case "output_format":
		s, err := oneOf(key, val, "markdown", "json", "yaml")
		if err != nil {
			return err
		}
		c.OutputFormat = s
	case "theme":
		s, err := oneOf(key, val, "default", "minimal", "dark", "colorful")
		if err != nil {
			return err
		}
		c.Theme = s
	case "log_level":
		s, err := oneOf(key, val, "debug", "info", "warn", "error")
		if err != nil {
			return err
		}
		c.LogLevel = s
	case "log_encoding":
		s, err := oneOf(key, val, "console", "json")
		if err != nil {
			return err
		}
		c.LogEncoding = s
	case "max_rows":
		return setInt(&c.MaxRows, key, val, 0)
	case "bar_cardinality":
		return setInt(&c.BarCardinality, key, val, 1)
	case "bar_min_rows":
		return setInt(&c.BarMinRows, key, val, 1)
	case "group_cardinality":
		return setInt(&c.GroupCardinality, key, val, 1)
	case "histogram_bins":
		return setInt(&c.HistogramBins, key, val, 1)
	case "chart_width":
		return setInt(&c.ChartWidth, key, val, 64)
	case "chart_height":
		return setInt(&c.ChartHeight, key, val, 64)
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}

func oneOf(key, val string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(val))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid %s: %s (use %s)", key, val, strings.Join(allowed, "|"))
}

func setInt(dst *int, key, val string, min int) error {
	i, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || i < min {
		return fmt.Errorf("invalid int for %s: %v (minimum %d)", key, val, min)
	}
	*dst = i
	return nil
}
