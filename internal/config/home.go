package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the project config location relative to a directory.
var ConfigFileName = filepath.Join(".lk", "config.yaml")

// FindConfigFile returns the config file to load when --config is not given.
// Priority order:
//  1. LK_CONFIG environment variable (if set, even if the file is missing)
//  2. .lk/config.yaml in dir or the nearest parent that has one
//  3. lk/config.yaml under the user config directory
//
// It returns "" when none exists, which LoadConfig treats as defaults.
func FindConfigFile(dir string) (string, error) {
	if path := os.Getenv("LK_CONFIG"); path != "" {
		return path, nil
	}

	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached filesystem root
			break
		}
		current = parent
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(userDir, "lk", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", nil
}
