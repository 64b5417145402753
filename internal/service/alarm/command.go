package alarm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/lights-out/internal/config"
	"github.com/oshokin/lights-out/internal/countdown"
	"github.com/oshokin/lights-out/internal/durfmt"
	"github.com/oshokin/lights-out/internal/indicator"
	"github.com/oshokin/lights-out/internal/logger"
	"github.com/oshokin/lights-out/internal/service/common"
	"github.com/oshokin/lights-out/internal/service/power"
)

// serviceName scopes the logger for the alarm run.
const serviceName = "lights-out"

// Options carries the command line inputs. String fields left empty fall
// back to the settings file and then to the built-in defaults.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// Timeout overrides the waiting countdown length (compact duration syntax).
	Timeout string
	// AlertDuration overrides the alerting countdown length.
	AlertDuration string
	// Indicator overrides the keyboard LED selector.
	Indicator string
	// DevicePath overrides the keyboard input device path.
	DevicePath string
	// Debug runs the full state machine but skips the actual power-off.
	Debug bool
}

// Run prepares the environment (configuration, single-instance guard,
// privileges, indicator hardware) and starts the alarm state machine.
// Under normal conditions it does not return: every successful path ends in
// a process-image replacement.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, serviceName)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	if err = applyOverrides(cfg, opts); err != nil {
		return err
	}

	if err = config.Validate(cfg); err != nil {
		return fmt.Errorf("validate configuration: %w", err)
	}

	if err = common.EnsureSingleInstance(executableName()); err != nil {
		return err
	}

	execer := power.SystemExecer{}

	// Driving LED control files and powering off both need root; replace
	// the process with an elevated re-invocation before touching hardware.
	if !power.IsElevated() {
		logger.Info(ctx, "Insufficient privileges, relaunching elevated")

		return power.RelaunchElevated(execer)
	}

	sel, err := indicator.ParseSelector(cfg.Indicator)
	if err != nil {
		return err
	}

	ledDir, err := indicator.NewResolver().Resolve(cfg.DevicePath, sel)
	if err != nil {
		return fmt.Errorf("resolve indicator: %w", err)
	}

	ind, err := indicator.New(ledDir)
	if err != nil {
		return fmt.Errorf("open indicator: %w", err)
	}

	logger.InfoKV(ctx, "Alarm armed",
		"timeout", cfg.Timeout.String(),
		"alert_duration", cfg.AlertDuration.String(),
		"indicator", string(sel),
		"led", ledDir)

	service := NewService(
		countdown.New(os.Stderr, countdown.NewStdinSource()),
		ind,
		execer,
		os.Stderr,
		cfg.Timeout.Std(),
		cfg.AlertDuration.Std(),
		opts.Debug,
	)

	return service.Run(ctx)
}

// loadConfig reads the settings file. A missing file at the default path is
// not an error; an explicitly requested file must exist.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		if path == "" && errors.Is(err, os.ErrNotExist) {
			return config.Default(), nil
		}

		return nil, fmt.Errorf("load configuration: %w", err)
	}

	return cfg, nil
}

// applyOverrides lets the command line win over the settings file.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.Timeout != "" {
		parsed, err := durfmt.Parse(opts.Timeout)
		if err != nil {
			return fmt.Errorf("timeout: %w", err)
		}

		cfg.Timeout = config.Duration(parsed)
	}

	if opts.AlertDuration != "" {
		parsed, err := durfmt.Parse(opts.AlertDuration)
		if err != nil {
			return fmt.Errorf("duration: %w", err)
		}

		cfg.AlertDuration = config.Duration(parsed)
	}

	if opts.Indicator != "" {
		cfg.Indicator = opts.Indicator
	}

	if opts.DevicePath != "" {
		cfg.DevicePath = opts.DevicePath
	}

	return nil
}

// executableName returns the binary's base name for the single-instance guard.
func executableName() string {
	path, err := os.Executable()
	if err != nil {
		path = os.Args[0]
	}

	return filepath.Base(path)
}
