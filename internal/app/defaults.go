package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - BLOG_CONFIG_PATH: config file location (default: ~/.config/blog.toml)
//   - BLOG_HOME: base directory for blog data (default: ~/.local/share/blog)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"store_dir":   filepath.Join(baseDir, "store"),
	}, nil
}

// getConfigPath returns the config file path, checking BLOG_CONFIG_PATH first,
// then falling back to ~/.config/blog.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("BLOG_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "blog.toml"), nil
}

// getBaseDir returns the data directory, checking BLOG_HOME first,
// then falling back to the XDG default ~/.local/share/blog.
func getBaseDir() (string, error) {
	if path := os.Getenv("BLOG_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "blog"), nil
}
