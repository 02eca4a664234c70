package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds the process configuration.
type Config struct {
	// DataFile is the demographic CSV snapshot, resolved relative to the
	// working directory like the upstream cleaning step leaves it.
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
	Listen   string `mapstructure:"listen" yaml:"listen"`
}

const defaultDataFile = "cleanednewglobal1.csv"

// Load loads configuration with precedence: env > config file > defaults.
// cfgFile may be empty, in which case popdash.yaml in the working
// directory is used when present.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POPDASH")
	v.AutomaticEnv()

	v.SetDefault("data_file", defaultDataFile)
	v.SetDefault("listen", ":8080")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("popdash")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the configuration as yaml. An empty path writes
// ./popdash.yaml.
func Save(c *Config, path string) error {
	if path == "" {
		path = "popdash.yaml"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
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
