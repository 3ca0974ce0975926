package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName     = "sashes"
	configName  = "config.toml"
	schemaName  = "config.schema.json"
	journalName = "journal.db"

	dirPerm  = 0o755
	filePerm = 0o644
)

// GetConfigDir returns $XDG_CONFIG_HOME/sashes.
func GetConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// GetDataDir returns $XDG_DATA_HOME/sashes.
func GetDataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// GetConfigFile returns the default config file path.
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), configName)
}

// GetJournalFile returns the default journal database path.
func GetJournalFile() string {
	return filepath.Join(GetDataDir(), journalName)
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	for _, dir := range []string{GetConfigDir(), GetDataDir()} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
