package countdown

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errScripted = errors.New("scripted failure")

// waitStep is one scripted answer of the fake cancel source.
type waitStep struct {
	ready bool
	err   error
}

// scriptedSource is a CancelSource whose Wait answers follow a script.
// When sleep is set, negative answers honor the requested timeout with a
// real sleep so expiry tests elapse honestly; answers past the end of the
// script fail the test to catch countdowns that never terminate.
type scriptedSource struct {
	t      *testing.T
	steps  []waitStep
	sleep  bool
	waits  []time.Duration
	drains int
}

func (s *scriptedSource) Wait(timeout time.Duration) (bool, error) {
	s.waits = append(s.waits, timeout)

	if len(s.steps) == 0 {
		if !s.sleep {
			s.t.Fatal("cancel source script exhausted")
		}

		time.Sleep(timeout)

		return false, nil
	}

	step := s.steps[0]
	s.steps = s.steps[1:]

	if s.sleep && !step.ready && step.err == nil {
		time.Sleep(timeout)
	}

	return step.ready, step.err
}

func (s *scriptedSource) Drain() error {
	s.drains++

	return nil
}

// TestRunZeroDurationExpiresImmediately asserts no blocking and no render.
func TestRunZeroDurationExpiresImmediately(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	source := &scriptedSource{t: t}
	cancelled, err := New(&out, source).Run(0, "ETA", nil)

	require.NoError(t, err)
	require.False(t, cancelled)
	require.Empty(t, out.String())
	require.Empty(t, source.waits)
}

// TestRunCancelled asserts immediate return on input, input draining, and
// that no tick follows the cancellation.
func TestRunCancelled(t *testing.T) {
	t.Parallel()

	var (
		out   bytes.Buffer
		ticks int
	)

	source := &scriptedSource{t: t, steps: []waitStep{{ready: true}}}
	cancelled, err := New(&out, source).Run(5*time.Second, "ETA", func() error {
		ticks++

		return nil
	})

	require.NoError(t, err)
	require.True(t, cancelled)
	require.Equal(t, 1, source.drains)
	require.Zero(t, ticks)

	// Exactly one render happened before the cancel.
	require.Equal(t, clearLine+"ETA: 5s", out.String())
}

// TestRunExpires asserts natural expiry takes approximately the total duration.
func TestRunExpires(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	source := &scriptedSource{t: t, sleep: true}
	started := time.Now()

	cancelled, err := New(&out, source).Run(150*time.Millisecond, "ALERT", nil)

	require.NoError(t, err)
	require.False(t, cancelled)
	require.GreaterOrEqual(t, time.Since(started), 150*time.Millisecond)
	require.True(t, strings.HasPrefix(out.String(), clearLine+"ALERT: "))

	// Sub-second remainders wait exactly the fractional part.
	require.NotEmpty(t, source.waits)
	require.LessOrEqual(t, source.waits[0], 150*time.Millisecond)
}

// TestRunWaitAlignment asserts wait slices never exceed one second, so the
// display ticks at about one-second granularity.
func TestRunWaitAlignment(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	// First wait errors out so the countdown terminates after one loop.
	source := &scriptedSource{t: t, steps: []waitStep{{err: errScripted}}}

	_, err := New(&out, source).Run(3*time.Second, "ETA", nil)
	require.ErrorIs(t, err, errScripted)
	require.Len(t, source.waits, 1)

	// The remaining time is a hair under three whole seconds by the time
	// the loop runs, so the first wait is its fractional part.
	require.Greater(t, source.waits[0], time.Duration(0))
	require.LessOrEqual(t, source.waits[0], time.Second)
}

// TestRunTick asserts the per-tick callback runs after every quiet wait and
// that its errors abort the countdown.
func TestRunTick(t *testing.T) {
	t.Parallel()

	var (
		out   bytes.Buffer
		ticks int
	)

	source := &scriptedSource{t: t, sleep: true}
	cancelled, err := New(&out, source).Run(80*time.Millisecond, "ALERT", func() error {
		ticks++

		return nil
	})

	require.NoError(t, err)
	require.False(t, cancelled)
	require.Equal(t, 1, ticks)

	// Tick errors propagate.
	source = &scriptedSource{t: t, steps: []waitStep{{}}}

	_, err = New(&out, source).Run(5*time.Second, "ALERT", func() error {
		return errScripted
	})
	require.ErrorIs(t, err, errScripted)
}

// TestRunWaitError asserts IO failures on the cancel source are surfaced.
func TestRunWaitError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	source := &scriptedSource{t: t, steps: []waitStep{{err: errScripted}}}

	cancelled, err := New(&out, source).Run(time.Minute, "ETA", nil)
	require.ErrorIs(t, err, errScripted)
	require.False(t, cancelled)
}
