package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	dirName         = ".segbox"
	configFileName  = "config.yaml"
	historyFileName = "history.db"
)

type initSettings struct {
	workingDir        string
	projectConfigPath string
	userConfigPath    string
}

// Option adjusts where Initialize looks for config files.
type Option func(*initSettings)

// WithWorkingDir starts the project file search in dir instead of the
// process working directory.
func WithWorkingDir(dir string) Option {
	return func(s *initSettings) { s.workingDir = dir }
}

// WithProjectConfig uses path as the project file and skips the search.
func WithProjectConfig(path string) Option {
	return func(s *initSettings) { s.projectConfigPath = path }
}

// WithUserConfig uses path in place of ~/.segbox/config.yaml.
func WithUserConfig(path string) Option {
	return func(s *initSettings) { s.userConfigPath = path }
}

// configFile is one YAML layer. An empty path means the layer is absent.
type configFile struct {
	scope string
	path  string
}

// resolve returns the user and project layers, lowest precedence first.
func (s *initSettings) resolve() ([]configFile, error) {
	user := strings.TrimSpace(s.userConfigPath)
	if user == "" {
		path, err := userConfigPath()
		if err != nil {
			return nil, err
		}
		user = path
	}

	project := strings.TrimSpace(s.projectConfigPath)
	if project == "" {
		start := strings.TrimSpace(s.workingDir)
		if start == "" {
			wd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("locate project config: %w", err)
			}
			start = wd
		}
		path, err := projectConfigAbove(start)
		if err != nil {
			return nil, err
		}
		project = path
	}

	return []configFile{{scope: "user", path: user}, {scope: "project", path: project}}, nil
}

// mergeInto layers the file over v. Missing and blank files are skipped.
func (f configFile) mergeInto(v *viper.Viper) error {
	if f.path == "" {
		return nil
	}
	info, err := os.Stat(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%s config: %w", f.scope, err)
	case info.IsDir():
		return fmt.Errorf("%s config: %s is a directory", f.scope, f.path)
	}

	//nolint:gosec // G304: reading the user's own config files
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("%s config: %w", f.scope, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%s config %s: %w", f.scope, f.path, err)
	}
	return nil
}

func userConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate user config: %w", err)
	}
	return filepath.Join(home, dirName, configFileName), nil
}

// projectConfigAbove walks from dir toward the filesystem root and returns
// the first .segbox/config.yaml found, or "" if there is none.
func projectConfigAbove(dir string) (string, error) {
	for {
		candidate := filepath.Join(dir, dirName, configFileName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.IsDir():
			return "", fmt.Errorf("project config: %s is a directory", candidate)
		case err == nil:
			return candidate, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("project config: %w", err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
