package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// UpstreamConfig holds the launch API endpoint settings
type UpstreamConfig struct {
	BaseURL                 string `toml:"BaseURL"`
	RequestTimeoutInSeconds uint32 `toml:"RequestTimeoutInSeconds"`
	Limit                   int    `toml:"Limit"`
	PageSize                int    `toml:"PageSize"`
}

// CacheConfig holds the staleness window and the on-disk snapshot location
type CacheConfig struct {
	TTLInSeconds uint32 `toml:"TTLInSeconds"`
	DataDir      string `toml:"DataDir"`
}

// ArchiveConfig holds the launch archive database settings
type ArchiveConfig struct {
	DBPath           string `toml:"DBPath"`
	RetentionSeconds int    `toml:"RetentionSeconds"` // 0 keeps archived launches forever
}

// WeatherConfig holds the weather collaborator endpoint settings
type WeatherConfig struct {
	BaseURL                 string `toml:"BaseURL"`
	RequestTimeoutInSeconds uint32 `toml:"RequestTimeoutInSeconds"`
}

// Config maps to the config.toml file for the launchboard service
type Config struct {
	ListenAddress            string         `toml:"ListenAddress"`
	RefreshIntervalInSeconds uint32         `toml:"RefreshIntervalInSeconds"`
	VehicleCategories        []string       `toml:"VehicleCategories"`
	Upstream                 UpstreamConfig `toml:"Upstream"`
	Cache                    CacheConfig    `toml:"Cache"`
	Archive                  ArchiveConfig  `toml:"Archive"`
	Weather                  WeatherConfig  `toml:"Weather"`
}

// LoadConfig parses a TOML file into the Config struct
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", filepath, err)
	}

	var cfg Config
	err = toml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	return &cfg, nil
}
