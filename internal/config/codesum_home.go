package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetCodesumHome returns the path to the centralized codesum home directory.
// The CODESUM_HOME environment variable overrides the default of
// ~/.codesum, which keeps run history shared across scanned projects.
// Creates the directory if it doesn't exist.
func GetCodesumHome() (string, error) {
	home := os.Getenv("CODESUM_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine user home directory: %w", err)
		}
		home = filepath.Join(userHome, ".codesum")
	}

	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("failed to create codesum home directory: %w", err)
	}

	return home, nil
}

// GetHistoryDBPath returns the full path to the run history database
// within the codesum home directory
func GetHistoryDBPath() (string, error) {
	home, err := GetCodesumHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
