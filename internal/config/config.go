package config

import (
	"os"
	"strconv"

	"confmat/internal/errors"
)

// DefaultOutputName is the workbook written next to the input file.
const DefaultOutputName = "output_confusion_matrix.xlsx"

// Config represents the complete application configuration
type Config struct {
	Output OutputConfig
	Ledger LedgerConfig
	Server ServerConfig
}

// OutputConfig holds workbook output settings
type OutputConfig struct {
	FileName string
}

// LedgerConfig holds run ledger settings; an empty Path disables the ledger
type LedgerConfig struct {
	Path string
}

// ServerConfig holds serve subcommand settings
type ServerConfig struct {
	Port int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Output: OutputConfig{FileName: DefaultOutputName},
		Ledger: LedgerConfig{Path: os.Getenv("CONFMAT_DB")},
		Server: ServerConfig{Port: 8080},
	}

	if name := os.Getenv("CONFMAT_OUTPUT_NAME"); name != "" {
		config.Output.FileName = name
	}

	if portStr := os.Getenv("CONFMAT_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, errors.ConfigInvalid("CONFMAT_PORT must be an integer")
		}
		config.Server.Port = port
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Output.FileName == "" {
		return errors.ConfigInvalid("output file name must not be empty")
	}
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return errors.ConfigInvalid("CONFMAT_PORT out of range")
	}
	return nil
}
