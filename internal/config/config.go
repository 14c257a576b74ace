package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/fovea/internal/analyzer"
	"github.com/ivlev/fovea/internal/system"
)

type Config struct {
	InputPath  string `yaml:"input"`
	ReportPath string `yaml:"report"`
	OverlayDir string `yaml:"overlay_dir"`
	Threshold  uint8  `yaml:"threshold"`
	Classifier string `yaml:"classifier"`
	Workers    int    `yaml:"workers"`
	Bands      int    `yaml:"bands"` // 0 = one band per worker
	DPI        int    `yaml:"dpi"`
	LogLevel   string `yaml:"log_level"`
	ShowStats  bool   `yaml:"show_stats"`

	BuildVersion string `yaml:"-"`
}

// Default returns the configuration used when no file or flag overrides a value
func Default() *Config {
	return &Config{
		Threshold:  30,
		Classifier: "sum",
		Workers:    system.DefaultWorkers(),
		DPI:        72,
		LogLevel:   "info",
	}
}

// Load reads a YAML file on top of Default
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges before a run starts
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Bands < 0 {
		return fmt.Errorf("bands must not be negative, got %d", c.Bands)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if _, err := analyzer.NewClassifier(c.Classifier); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
