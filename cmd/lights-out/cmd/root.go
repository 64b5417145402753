package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/oshokin/lights-out/internal/config"
	"github.com/oshokin/lights-out/internal/logger"
	"github.com/oshokin/lights-out/internal/service/alarm"
	"github.com/oshokin/lights-out/internal/version"
)

var (
	// configPath stores the path to the settings YAML file.
	configPath string
	// timeoutText is the waiting countdown length in compact duration syntax.
	timeoutText string
	// alertText is the alerting countdown length in compact duration syntax.
	alertText string
	// indicatorName selects the keyboard LED: capslock, numlock or scrolllock.
	indicatorName string
	// devicePath is the keyboard input event device the LED belongs to.
	devicePath string
	// logLevel sets the minimum level for structured log output.
	logLevel string
	// debug runs the full alarm but skips the actual power-off.
	debug bool

	// rootCmd represents the base command running the alarm.
	rootCmd = &cobra.Command{
		Use:   "lights-out",
		Short: "Countdown alarm that drives a keyboard LED and powers the machine off.",
		Long: `Countdown alarm for unattended machines.

After the timeout expires, the selected keyboard indicator LED lights up and
a second countdown starts. Press any key (any input on stdin) during either
countdown to snooze the alarm back to the start. If the alert countdown
expires unacknowledged, the machine is powered off.

Durations use a compact syntax: "3h", "1h30m", "90m", "45s". Settings can
also be provided in a YAML file; command line flags win over the file.

Root privileges are required to drive the LED and to power off; the process
re-invokes itself through sudo when started unprivileged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if level, ok := logger.ParseLogLevel(logLevel); ok {
				logger.SetLevel(level)
			}

			// Keep interrupt at its default disposition: Ctrl+C must kill
			// the process immediately instead of unwinding the countdown.
			signal.Reset(os.Interrupt)

			opts := &alarm.Options{
				ConfigPath: configPath,
				Debug:      debug,
			}

			// Only explicitly set flags override the settings file.
			flags := cmd.Flags()
			if flags.Changed("timeout") {
				opts.Timeout = timeoutText
			}

			if flags.Changed("duration") {
				opts.AlertDuration = alertText
			}

			if flags.Changed("indicator") {
				opts.Indicator = indicatorName
			}

			if flags.Changed("device") {
				opts.DevicePath = devicePath
			}

			return alarm.Run(cmd.Context(), opts)
		},
	}
)

// Execute runs the lights-out CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to settings file (default "+config.DefaultConfigFilename+")")
	flags.StringVarP(&timeoutText, "timeout", "t", config.DefaultTimeout.String(), "time until the alert phase starts")
	flags.StringVarP(&alertText, "duration", "d", config.DefaultAlertDuration.String(), "length of the alert phase")
	flags.StringVarP(&indicatorName, "indicator", "i", config.DefaultIndicator, "keyboard LED to drive (capslock, numlock, scrolllock)")
	flags.StringVar(&devicePath, "device", config.DefaultDevicePath, "keyboard input event device")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error, fatal)")

	// Hidden debug flag to skip the power-off while testing on a real machine.
	flags.BoolVar(&debug, "debug", false, "skip the power-off for debugging")

	err := flags.MarkHidden("debug")
	if err != nil {
		panic(err)
	}
}
