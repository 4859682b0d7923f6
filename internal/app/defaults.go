package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment
// variables first. Environment variables:
//   - DBU_CONFIG_PATH: config file location (default: ~/.config/dbu.toml)
//   - DBU_LOG_DIR: log directory (default: ~/.local/state/dbu/log)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	logDir, err := getLogDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"log_dir":     logDir,
	}, nil
}

// getConfigPath returns the config file path, checking DBU_CONFIG_PATH
// first, then falling back to the default ~/.config/dbu.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("DBU_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dbu.toml"), nil
}

// getLogDir returns the log directory, checking DBU_LOG_DIR first, then
// falling back to the XDG state default ~/.local/state/dbu/log.
func getLogDir() (string, error) {
	if path := os.Getenv("DBU_LOG_DIR"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", "dbu", "log"), nil
}
