package configs

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Store   Store   `toml:"store"`
	Storage Storage `toml:"storage"`
}

type Store struct {
	UUID      string    `toml:"store_uuid"`
	Name      string    `toml:"name,omitempty"`
	CreatedAt time.Time `toml:"created_at"`
}

type Storage struct {
	DataDir  string `toml:"data_dir,omitempty"`
	DataFile string `toml:"data_file,omitempty"`
	KeyFile  string `toml:"key_file,omitempty"`
}

// LoadConfig loads the config file. A missing file yields an empty config.
func LoadConfig() (*Config, error) {
	configPath := RollcallSettings.ConfigPath

	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig saves the config file.
func SaveConfig(config *Config) error {
	if err := SaveTOML(RollcallSettings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// GenerateStoreUUID generates a new UUID identifying this store in audit entries.
func GenerateStoreUUID() string {
	return uuid.New().String()
}

// EnsureConfig ensures the config file exists and has a store UUID.
func EnsureConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Store.UUID == "" {
		config.Store.UUID = GenerateStoreUUID()
		config.Store.CreatedAt = time.Now().UTC().Truncate(time.Second)
		if err := SaveConfig(config); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
	}

	return config, nil
}
