package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// SaveTheme records name as the theme in the file the user most likely
// edits: the project .segbox/config.yaml when one is found from the working
// directory, else ~/.segbox/config.yaml. Other keys in that file are kept.
// Only the user directory is created on demand.
func SaveTheme(name string) error {
	path, err := themeFile()
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("save theme: read %s: %w", path, err)
	}
	v.Set(KeyTheme, name)

	//nolint:gosec // G301: ~/.segbox is a plain user directory
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func themeFile() (string, error) {
	if wd, err := os.Getwd(); err == nil {
		if project, err := projectConfigAbove(wd); err == nil && project != "" {
			return project, nil
		}
	}

	state.mu.RLock()
	override := state.userFile
	state.mu.RUnlock()
	if override != "" {
		return override, nil
	}
	return userConfigPath()
}

func setUserConfigPathOverride(path string) {
	state.mu.Lock()
	state.userFile = path
	state.mu.Unlock()
}
