package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecretConfig represents a pre-configured cloud credential in the config file.
type SecretConfig struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Vendor         string         `yaml:"vendor"`
	CloudSecretID  string         `yaml:"cloud_secret_id"`
	CloudSecretKey string         `yaml:"cloud_secret_key"`
	Resources      map[string]int `yaml:"resources"` // resource type -> count
}

// Config holds all configuration (CLI flags + config file).
type Config struct {
	Listen   string         `yaml:"listen"`
	LogLevel string         `yaml:"log_level"`
	Dev      bool           `yaml:"-"`
	Secrets  []SecretConfig `yaml:"secrets"`

	// internal: path to config file (from CLI flag)
	configFile string
}

// Parse reads CLI flags, then overlays config file values.
// CLI flags take precedence over config file values.
func Parse(args []string) (*Config, error) {
	fs := flag.NewFlagSet("workbench", flag.ContinueOnError)
	c := &Config{}
	fs.StringVar(&c.configFile, "config", "", "Path to config file (YAML)")
	fs.StringVar(&c.Listen, "listen", "", "HTTP listen address")
	fs.StringVar(&c.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&c.Dev, "dev", false, "Dev mode (console log encoding)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.configFile != "" {
		if err := c.loadFile(c.configFile); err != nil {
			return nil, err
		}
	}

	// Apply defaults for anything still unset
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return c, nil
}

// MustParse is Parse for main: errors are printed and the process exits.
func MustParse() *Config {
	c, err := Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return c
}

// loadFile reads a YAML config file. Values from the file are only applied
// if the corresponding CLI flag was not explicitly set.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if c.Listen == "" && file.Listen != "" {
		c.Listen = file.Listen
	}
	if c.LogLevel == "" && file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}

	// Secrets always come from config file
	c.Secrets = file.Secrets

	return nil
}
