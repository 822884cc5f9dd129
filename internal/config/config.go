// Package config resolves segbox settings. Each key is read from, in rising
// precedence: built-in defaults, ~/.segbox/config.yaml, the nearest
// .segbox/config.yaml at or above the working directory, SB_* environment
// variables, and finally flag overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Keys use dots for nesting in YAML. The environment name is SB_ followed by
// the key upper-cased with dots and dashes as underscores, so
// searchbox.max-visible is SB_SEARCHBOX_MAX_VISIBLE.
const (
	KeyTheme  = "theme"  // SB_THEME
	KeySource = "source" // SB_SOURCE, space separated
	KeyDebug  = "debug"  // SB_DEBUG

	KeyDatabasePath = "database.path"

	KeySearchboxWidth       = "searchbox.width"
	KeySearchboxMaxVisible  = "searchbox.max-visible"
	KeySearchboxPlaceholder = "searchbox.placeholder"

	KeyFetchTimeout = "fetch.timeout"
	KeyHelpFormat   = "help.format"

	KeyServerAddr = "server.addr"
	KeyServerDir  = "server.dir"

	KeyReleaseRepo = "release.repo"
	KeyReleaseAPI  = "release.api"
)

const (
	// DefaultMaxVisible is the default number of dropdown rows shown at once.
	DefaultMaxVisible = 5
	// DefaultWidth is the default searchbox width in cells.
	DefaultWidth = 60

	envPrefix = "SB"
)

var defaults = map[string]any{
	KeyTheme:                "tokyonight",
	KeySource:               []string{},
	KeyDebug:                false,
	KeyDatabasePath:         "",
	KeySearchboxWidth:       DefaultWidth,
	KeySearchboxMaxVisible:  DefaultMaxVisible,
	KeySearchboxPlaceholder: "Type to search...",
	KeyFetchTimeout:         10 * time.Second,
	KeyHelpFormat:           "rich",
	KeyServerAddr:           ":8765",
	KeyServerDir:            ".",
	KeyReleaseRepo:          "segbox/segbox",
	KeyReleaseAPI:           "https://api.github.com",
}

var errNotInitialized = errors.New("configuration not initialized")

// state is the process-wide settings store. Tests clear it with reset.
var state struct {
	once sync.Once
	mu   sync.RWMutex
	v    *viper.Viper
	err  error

	// userFile replaces ~/.segbox/config.yaml as the SaveTheme target.
	userFile string
}

// Initialize builds the settings store once; later calls return the first
// result. Getters call it on demand, so it only needs calling explicitly to
// pass options or to surface a malformed config file early.
func Initialize(opts ...Option) error {
	state.once.Do(func() {
		var s initSettings
		for _, opt := range opts {
			opt(&s)
		}
		v, err := load(&s)
		state.mu.Lock()
		state.v, state.err = v, err
		state.mu.Unlock()
	})
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.err
}

func load(s *initSettings) (*viper.Viper, error) {
	files, err := s.resolve()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, f := range files {
		if err := f.mergeInto(v); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func store() (*viper.Viper, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}
	state.mu.RLock()
	defer state.mu.RUnlock()
	if state.v == nil {
		return nil, errNotInitialized
	}
	return state.v, nil
}

// lookup reads key with get, yielding the zero value when the store failed
// to load.
func lookup[T any](key string, get func(*viper.Viper, string) T) T {
	v, err := store()
	if err != nil {
		var zero T
		return zero
	}
	return get(v, key)
}

// GetString returns the string value of key.
func GetString(key string) string { return lookup(key, (*viper.Viper).GetString) }

// GetBool returns the boolean value of key.
func GetBool(key string) bool { return lookup(key, (*viper.Viper).GetBool) }

// GetInt returns the integer value of key.
func GetInt(key string) int { return lookup(key, (*viper.Viper).GetInt) }

// GetDuration returns key as a duration; plain strings such as "5s" parse.
func GetDuration(key string) time.Duration { return lookup(key, (*viper.Viper).GetDuration) }

// GetStringSlice returns key as a list. A scalar becomes a one-element list
// and SB_SOURCE splits on spaces.
func GetStringSlice(key string) []string { return lookup(key, (*viper.Viper).GetStringSlice) }

// ApplyOverrides sets flag values, which outrank every other source.
func ApplyOverrides(overrides map[string]any) error {
	if len(overrides) == 0 {
		return nil
	}
	return update(func(v *viper.Viper) {
		for k, value := range overrides {
			v.Set(k, value)
		}
	})
}

// Set changes one key for the rest of the process. Nothing is written to
// disk; see SaveTheme for that.
func Set(key string, value any) error {
	return update(func(v *viper.Viper) { v.Set(key, value) })
}

func update(fn func(*viper.Viper)) error {
	if err := Initialize(); err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.v == nil {
		return errNotInitialized
	}
	fn(state.v)
	return nil
}

// DatabasePath returns database.path, or ~/.segbox/history.db when unset.
func DatabasePath() (string, error) {
	if path := strings.TrimSpace(GetString(KeyDatabasePath)); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate history database: %w", err)
	}
	return filepath.Join(home, dirName, historyFileName), nil
}

// reset drops the store so the next access loads again.
func reset() {
	state.mu.Lock()
	defer state.mu.Unlock()
	state.once = sync.Once{}
	state.v = nil
	state.err = nil
	state.userFile = ""
}

// ResetForTesting gives another package's test a fresh store rooted in a
// temporary directory, so no real ~/.segbox or project file leaks in. The
// returned function clears the store again.
func ResetForTesting(t interface{ TempDir() string }) func() {
	reset()
	tmp := t.TempDir()
	userFile := filepath.Join(tmp, dirName, configFileName)
	_ = Initialize(WithWorkingDir(tmp), WithUserConfig(userFile))
	setUserConfigPathOverride(userFile)
	return reset
}
