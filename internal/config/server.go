package config

import (
	"fmt"
)

const defaultServerPort = 8080

// ServerConfig defines the HTTP API exposed by the server binary.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Port == 0 {
		cfg.Port = defaultServerPort
	}
	if cfg.Port < 0 || cfg.Port > maxPort {
		return fmt.Errorf("server port %d is out of range", cfg.Port)
	}
	return nil
}
