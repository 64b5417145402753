package countdown

import (
	"fmt"
	"io"
	"time"

	"github.com/oshokin/lights-out/internal/durfmt"
)

// CancelSource is a level-triggered readiness source for cancel input.
type CancelSource interface {
	// Wait blocks until cancel input is available or the timeout elapses,
	// whichever comes first, and reports whether input is available.
	Wait(timeout time.Duration) (bool, error)
	// Drain consumes pending cancel input so a later countdown does not
	// observe stale bytes.
	Drain() error
}

// clearLine rewinds the cursor and erases the current terminal line, so the
// next render overwrites the previous one instead of scrolling.
const clearLine = "\r\x1b[K"

// Countdown runs cancellable, periodically rendered countdowns on a single
// status stream. The zero value is not usable; construct with New.
type Countdown struct {
	// out is the status stream the remaining time is rendered to.
	out io.Writer
	// cancel supplies the external cancel signal.
	cancel CancelSource
}

// New returns a countdown rendering to out and cancellable through cancel.
func New(out io.Writer, cancel CancelSource) *Countdown {
	return &Countdown{
		out:    out,
		cancel: cancel,
	}
}

// Run counts down for the given total, rendering "{label}: {remaining}" about
// once per second, and returns true when cancel input arrived before expiry.
// The wait slices align subsequent renders on whole-second boundaries: the
// fractional part of the remaining time when non-zero, exactly one second
// otherwise. onTick, when provided, runs after every wait that saw no input;
// its errors abort the countdown. A zero total expires immediately without
// rendering. Deadline arithmetic uses the monotonic clock, so wall clock
// adjustments cannot stretch or shrink the countdown.
func (c *Countdown) Run(total time.Duration, label string, onTick func() error) (bool, error) {
	deadline := time.Now().Add(total)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}

		fmt.Fprintf(c.out, "%s%s: %s", clearLine, label, durfmt.Format(remaining))

		wait := remaining % time.Second
		if wait == 0 {
			wait = time.Second
		}

		ready, err := c.cancel.Wait(wait)
		if err != nil {
			return false, fmt.Errorf("wait for cancel input: %w", err)
		}

		if ready {
			if err = c.cancel.Drain(); err != nil {
				return false, err
			}

			return true, nil
		}

		if onTick != nil {
			if err = onTick(); err != nil {
				return false, fmt.Errorf("tick: %w", err)
			}
		}
	}
}
