package config

import (
	"fmt"
)

const (
	defaultMetricsPort = 2112
	maxPort            = 65535
)

// MetricsConfig defines the prometheus metrics server.
type MetricsConfig struct {
	Port int `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port == 0 {
		cfg.Port = defaultMetricsPort
	}
	if cfg.Port < 0 || cfg.Port > maxPort {
		return fmt.Errorf("metrics port %d is out of range", cfg.Port)
	}
	return nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
