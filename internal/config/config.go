package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the aggregation engine and the
// server binary around it.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Server   ServerConfig   `mapstructure:"server"`
}

func (cfg *Config) Validate() error {
	if err := cfg.API.Validate(); err != nil {
		return err
	}
	if err := cfg.Graph.Validate(); err != nil {
		return err
	}
	if err := cfg.Chain.Validate(); err != nil {
		return err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return err
	}
	if err := cfg.Resolver.Validate(); err != nil {
		return err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}
	return cfg.Server.Validate()
}

// New loads the config file at the given path, layering environment
// variables (VAULTAGG_SECTION_KEY) on top.
func New(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetEnvPrefix("vaultagg")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
