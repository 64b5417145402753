package alarm

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/oshokin/lights-out/internal/durfmt"
	"github.com/oshokin/lights-out/internal/logger"
	"github.com/oshokin/lights-out/internal/service/power"
)

// Phase is the alarm lifecycle stage.
type Phase int

// Alarm phases. The alarm starts in PhaseWaiting; cancel input during
// either countdown returns it to PhaseWaiting.
const (
	PhaseWaiting Phase = iota
	PhaseAlerting
	PhaseDone
)

// String returns the lowercase phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseAlerting:
		return "alerting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Countdown labels rendered on the status stream.
const (
	etaLabel   = "ETA"
	alertLabel = "ALERT"
)

// Indicator is the alert light driven during the alerting phase.
type Indicator interface {
	Activate() error
	Deactivate() error
}

// Countdown runs one cancellable countdown and reports whether it was
// cancelled by external input before expiry.
type Countdown interface {
	Run(total time.Duration, label string, onTick func() error) (bool, error)
}

// Service owns the two-phase alarm flow: a waiting countdown, an alerting
// countdown with the indicator lit, and the terminal power-off.
type Service struct {
	// countdown runs the individual phase timers.
	countdown Countdown
	// indicator is the alert light; the service owns its lifecycle while alerting.
	indicator Indicator
	// execer performs the terminal power-off.
	execer power.Execer
	// out is the status stream shared with the countdown renders.
	out io.Writer
	// timeout is the length of the waiting phase.
	timeout time.Duration
	// alertDuration is the length of the alerting phase.
	alertDuration time.Duration
	// debug skips the actual power-off.
	debug bool
}

// NewService wires the alarm state machine from its collaborators.
func NewService(
	countdown Countdown,
	indicator Indicator,
	execer power.Execer,
	out io.Writer,
	timeout, alertDuration time.Duration,
	debug bool,
) *Service {
	return &Service{
		countdown:     countdown,
		indicator:     indicator,
		execer:        execer,
		out:           out,
		timeout:       timeout,
		alertDuration: alertDuration,
		debug:         debug,
	}
}

// Run drives the alarm until it expires unacknowledged, then powers the
// machine off. Any cancel input snoozes the alarm back to the start of the
// waiting phase, so under normal conditions Run returns only on error or in
// debug mode.
func (s *Service) Run(ctx context.Context) error {
	for {
		logger.InfoKV(ctx, "Entering phase",
			"phase", PhaseWaiting, "duration", durfmt.Format(s.timeout))

		cancelled, err := s.countdown.Run(s.timeout, etaLabel, nil)
		if err != nil {
			return fmt.Errorf("waiting countdown: %w", err)
		}

		if cancelled {
			logger.Info(ctx, "Alarm snoozed, countdown restarted")

			continue
		}

		expired, err := s.alert(ctx)
		if err != nil {
			return err
		}

		if expired {
			break
		}
	}

	// Finish the in-place countdown line before handing over the terminal.
	fmt.Fprintln(s.out)

	logger.InfoKV(ctx, "Alarm expired unacknowledged, powering off", "phase", PhaseDone)

	if s.debug {
		logger.Info(ctx, "Debug mode prevents power-off")

		return nil
	}

	if err := power.Shutdown(s.execer); err != nil {
		return fmt.Errorf("power off: %w", err)
	}

	return nil
}

// alert runs the alerting phase and reports whether it expired
// unacknowledged. The indicator is lit on entry, re-asserted on every tick
// in case the hardware clears it spontaneously, and released on every exit
// path, including countdown errors.
func (s *Service) alert(ctx context.Context) (expired bool, err error) {
	logger.InfoKV(ctx, "Entering phase",
		"phase", PhaseAlerting, "duration", durfmt.Format(s.alertDuration))

	if err = s.indicator.Activate(); err != nil {
		return false, fmt.Errorf("activate indicator: %w", err)
	}

	defer func() {
		if derr := s.indicator.Deactivate(); derr != nil && err == nil {
			err = fmt.Errorf("deactivate indicator: %w", derr)
		}
	}()

	cancelled, err := s.countdown.Run(s.alertDuration, alertLabel, s.indicator.Activate)
	if err != nil {
		return false, fmt.Errorf("alerting countdown: %w", err)
	}

	if cancelled {
		logger.Info(ctx, "Alert acknowledged, countdown restarted")
	}

	return !cancelled, nil
}
