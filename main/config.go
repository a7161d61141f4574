package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrBadConfig = errors.New("takebench: invalid config")

// Config drives a takebench run. Zero fields fall back to DefaultConfig.
type Config struct {
	Iterations int           `yaml:"iterations"`
	SliceLen   int           `yaml:"slice_len"`
	Text       string        `yaml:"text"`
	PprofAddr  string        `yaml:"pprof_addr"`
	Profile    string        `yaml:"profile"`
	Hold       time.Duration `yaml:"hold"`
	LogLevel   string        `yaml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Iterations: 10000,
		SliceLen:   64,
		Text:       "Hi!",
		LogLevel:   "info",
	}
}

// LoadConfig reads a YAML file on top of the defaults. An empty path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be > 0, got %d", ErrBadConfig, c.Iterations)
	}
	if c.SliceLen < 0 {
		return fmt.Errorf("%w: slice_len must be >= 0, got %d", ErrBadConfig, c.SliceLen)
	}
	if c.Hold < 0 {
		return fmt.Errorf("%w: hold must be >= 0", ErrBadConfig)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrBadConfig, err)
	}
	return nil
}
