package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries flag defaults loaded from the --config file. Flags set on
// the command line win over the file.
type Config struct {
	OmitSymlinks bool   `yaml:"omit_symlinks"`
	LogLevel     string `yaml:"log_level"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
