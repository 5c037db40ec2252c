package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InventoryPath string   // inventory file or directory
	Hosts         []string // hosts to converge; empty means all
	TemplateRoot  string   // root for relative template names

	LogFormat   string
	LogLevel    string
	MetricsPort int
	Parallel    int // systems converged at once
	List        bool
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InventoryPath == "" {
		return nil, errors.New("InventoryPath is a required configuration field and cannot be empty")
	}
	if cfg.Parallel < 0 {
		return nil, fmt.Errorf("parallel must not be negative, got %d", cfg.Parallel)
	}
	if cfg.Parallel == 0 {
		cfg.Parallel = 1
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return nil, fmt.Errorf("metrics port %d out of range", cfg.MetricsPort)
	}
	return &cfg, nil
}
