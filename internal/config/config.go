// Package config loads evreg configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ksoares/evreg/internal/registry"
	"github.com/ksoares/evreg/internal/store"
)

// EnvVarConfig overrides the config file location.
const EnvVarConfig = "EVREG_CONFIG"

// EnvVarData overrides the data file location, taking precedence over the
// config file.
const EnvVarData = "EVREG_DATA"

// Duration is a time.Duration that unmarshals from TOML strings like "2h".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds user-tunable settings. Every field has a working default;
// the config file is optional.
type Config struct {
	// DataPath is where the registry file lives. Empty means the standard
	// location under the user's home directory.
	DataPath string `toml:"data_path"`

	// EventDuration is how long an event is assumed to run when computing
	// its status. Defaults to two hours.
	EventDuration Duration `toml:"event_duration"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EventDuration: Duration(registry.DefaultEventDuration),
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "evreg", "config.toml"), nil
}

// Load reads the config file at path. A missing file is not an error; the
// defaults apply. A present but unparsable file is an error, since silently
// ignoring explicit configuration would be worse than failing.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.EventDuration <= 0 {
		cfg.EventDuration = Duration(registry.DefaultEventDuration)
	}
	return cfg, nil
}

// LoadDefault reads the config from EVREG_CONFIG or the standard location.
func LoadDefault() (Config, error) {
	if path := os.Getenv(EnvVarConfig); path != "" {
		return Load(path)
	}
	path, err := DefaultPath()
	if err != nil {
		return Default(), err
	}
	return Load(path)
}

// ResolveDataPath decides where the registry file lives: EVREG_DATA, then
// the config file, then the standard location.
func (c Config) ResolveDataPath() (string, error) {
	if path := os.Getenv(EnvVarData); path != "" {
		return path, nil
	}
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	return store.DefaultPath()
}

// Duration returns the configured event duration as a time.Duration.
func (c Config) Duration() time.Duration {
	return time.Duration(c.EventDuration)
}
