package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"

	// DefaultStorageLimit is 10 GiB, the storage limit of a team unless configured
	DefaultStorageLimit int64 = 10737418240
)

type Config struct {
	Environment     Environment `toml:"environment"`
	ConfigDirectory string      `toml:"config_directory"`
	LogDirectory    string      `toml:"log_directory"`

	// SeedFile is a JSON, YAML or SQLite file to populate the store at startup.
	// The built-in seed data is used if it's empty.
	SeedFile     string `toml:"seed_file"`
	StorageLimit int64  `toml:"storage_limit"`

	// UserID and TeamID select the actor for permission checks. 0 means no actor
	UserID uint `toml:"user_id"`
	TeamID uint `toml:"team_id"`
}

func defaultConfig(configDir string) Config {
	return Config{
		Environment:     EnvironmentProduction,
		ConfigDirectory: configDir,
		LogDirectory:    filepath.Join(configDir, "logs"),
		StorageLimit:    DefaultStorageLimit,
	}
}

func defaultConfigDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir: %w", err)
	}
	return filepath.Join(homeDir, ".config", "file-manager"), nil
}

// ReadConfig reads a TOML file at configFile, or default.toml under the default config directory
// if configFile is empty. Missing files fall back to the defaults.
func ReadConfig(configFile string) (Config, error) {
	configDir, err := defaultConfigDirectory()
	if err != nil {
		return Config{}, fmt.Errorf("defaultConfigDirectory: %w", err)
	}
	if configFile == "" {
		configFile = filepath.Join(configDir, "default.toml")
	} else {
		configDir = filepath.Dir(configFile)
	}
	conf := defaultConfig(configDir)

	file, err := os.Open(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("os.Open: %w", err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return conf, fmt.Errorf("io.ReadAll: %w", err)
	}
	if _, err := toml.Decode(string(contents), &conf); err != nil {
		return conf, fmt.Errorf("toml.Decode: %w", err)
	}

	if conf.SeedFile != "" && !filepath.IsAbs(conf.SeedFile) {
		conf.SeedFile = filepath.Join(configDir, conf.SeedFile)
	}
	if conf.StorageLimit <= 0 {
		conf.StorageLimit = DefaultStorageLimit
	}
	switch conf.Environment {
	case EnvironmentDevelopment, EnvironmentProduction:
	default:
		return conf, fmt.Errorf("unknown environment: %q", conf.Environment)
	}
	return conf, nil
}
