package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/lights-out/internal/durfmt"
)

// TestValidate checks required fields and value ranges.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Unknown indicator.
	cfg := Default()
	cfg.Indicator = "shiftlock"
	require.Error(t, Validate(cfg))

	// Missing device path.
	cfg = Default()
	cfg.DevicePath = ""
	require.Error(t, Validate(cfg))

	// Negative duration.
	cfg = Default()
	cfg.Timeout = Duration(-time.Second)
	require.Error(t, Validate(cfg))

	// Zero durations are legal: the countdown simply expires immediately.
	cfg = Default()
	cfg.Timeout = 0
	cfg.AlertDuration = 0
	require.NoError(t, Validate(cfg))

	require.NoError(t, Validate(Default()))
}

// TestLoadDefaultsAndOverrides ensures omitted fields keep defaults and
// present fields are parsed through durfmt.
func TestLoadDefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, os.WriteFile(path, []byte("timeout: 90m\nindicator: capslock\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Duration(90*time.Minute), cfg.Timeout)
	require.Equal(t, "capslock", cfg.Indicator)

	// Omitted fields keep their defaults.
	require.Equal(t, DefaultAlertDuration, cfg.AlertDuration)
	require.Equal(t, DefaultDevicePath, cfg.DevicePath)

	// Malformed duration.
	require.NoError(t, os.WriteFile(path, []byte("timeout: ninety minutes\n"), 0o600))

	_, err = Load(path)
	require.ErrorIs(t, err, durfmt.ErrInvalidFormat)

	// Missing file.
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := &Config{
		Timeout:       Duration(2 * time.Hour),
		AlertDuration: Duration(30 * time.Minute),
		Indicator:     "numlock",
		DevicePath:    "/dev/input/event3",
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	// Durations are stored in compact form.
	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "timeout: 2h")
	require.Contains(t, string(contents), "alert_duration: 30m")

	// Invalid settings are rejected before touching the disk.
	require.Error(t, Save(path, nil))
	require.Error(t, Save(path, &Config{Indicator: "shiftlock"}))
}
