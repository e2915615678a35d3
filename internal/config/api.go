package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	defaultAPITimeout       = 15 * time.Second
	defaultAPIMaxRetryTimes = 3
	defaultAPIRetryInterval = 500 * time.Millisecond
)

// APIConfig defines the connection to the hosted vaults REST API.
type APIConfig struct {
	BaseURL       string        `mapstructure:"base-url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func DefaultAPIConfig() *APIConfig {
	return &APIConfig{
		Timeout:       defaultAPITimeout,
		MaxRetryTimes: defaultAPIMaxRetryTimes,
		RetryInterval: defaultAPIRetryInterval,
	}
}

func (cfg *APIConfig) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("vaults API base-url is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return fmt.Errorf("vaults API base-url is not a valid URL: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAPITimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultAPIMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultAPIRetryInterval
	}
	return nil
}
