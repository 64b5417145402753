package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/lights-out/internal/durfmt"
	"github.com/oshokin/lights-out/internal/indicator"
)

// Duration is a time.Duration that (un)marshals through the compact durfmt
// syntax, so the settings file and the command line share one notation.
type Duration time.Duration

// UnmarshalYAML parses a compact duration string such as "3h" or "1h30m".
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := durfmt.Parse(raw)
	if err != nil {
		return err
	}

	*d = Duration(parsed)

	return nil
}

// MarshalYAML renders the duration in compact form.
func (d Duration) MarshalYAML() (any, error) {
	return durfmt.Format(time.Duration(d)), nil
}

// String renders the duration in compact form.
func (d Duration) String() string {
	return durfmt.Format(time.Duration(d))
}

// Std returns the value as a plain time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the alarm settings shared by the settings file and the CLI flags.
type Config struct {
	// Timeout is the length of the initial countdown before alerting begins.
	Timeout Duration `yaml:"timeout"`
	// AlertDuration is the length of the alert countdown during which the
	// indicator is driven.
	AlertDuration Duration `yaml:"alert_duration"`
	// Indicator names the keyboard LED to drive: capslock, numlock or scrolllock.
	Indicator string `yaml:"indicator"`
	// DevicePath is the keyboard input event device the indicator belongs to.
	DevicePath string `yaml:"device_path"`
}

const (
	// DefaultConfigFilename is the default filename for alarm settings.
	DefaultConfigFilename = "lights-out-settings.yaml"

	// DefaultTimeout is the default length of the initial countdown.
	DefaultTimeout = Duration(3 * time.Hour)

	// DefaultAlertDuration is the default length of the alert countdown.
	DefaultAlertDuration = Duration(time.Hour)

	// DefaultIndicator is the keyboard LED driven when none is configured.
	DefaultIndicator = string(indicator.SelectorScrollLock)

	// DefaultDevicePath is the usual by-path alias of the built-in keyboard.
	DefaultDevicePath = "/dev/input/by-path/platform-i8042-serio-0-event-kbd"

	// DefaultFilePermissions is the default file permission for the settings file.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeDuration is returned when a countdown length is below zero.
	errNegativeDuration = errors.New("durations must not be negative")
	// errDevicePathRequired is returned when the keyboard device path is missing.
	errDevicePathRequired = errors.New("device path must be provided")
)

// Default returns a configuration with all fields at their defaults.
func Default() *Config {
	return &Config{
		Timeout:       DefaultTimeout,
		AlertDuration: DefaultAlertDuration,
		Indicator:     DefaultIndicator,
		DevicePath:    DefaultDevicePath,
	}
}

// Load reads configuration from the provided path and validates it.
// Fields omitted from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the configuration for required fields and value ranges.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.Timeout < 0 || cfg.AlertDuration < 0 {
		return errNegativeDuration
	}

	if _, err := indicator.ParseSelector(cfg.Indicator); err != nil {
		return err
	}

	if cfg.DevicePath == "" {
		return errDevicePathRequired
	}

	return nil
}
