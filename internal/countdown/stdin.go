package countdown

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// drainLimit bounds how much pending input a single drain consumes.
const drainLimit = 1024

// StdinSource treats any data arriving on standard input as a cancel signal.
// The wait is a poll(2) on the stdin file descriptor, keeping the whole
// countdown single-threaded. A closed stdin reads as permanently ready,
// i.e. as a cancel signal.
type StdinSource struct {
	// fd is the standard input file descriptor.
	fd int
}

// NewStdinSource returns a cancel source backed by standard input.
func NewStdinSource() *StdinSource {
	return &StdinSource{
		fd: int(os.Stdin.Fd()),
	}
}

// Wait polls stdin for readability for at most the given timeout.
func (s *StdinSource) Wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{
		Fd:     int32(s.fd),
		Events: unix.POLLIN,
	}}

	for {
		n, err := unix.Poll(fds, int(timeout/time.Millisecond))
		if errors.Is(err, unix.EINTR) {
			continue
		}

		if err != nil {
			return false, fmt.Errorf("poll cancel input: %w", err)
		}

		return n > 0, nil
	}
}

// Drain reads and discards pending input, up to drainLimit bytes.
func (s *StdinSource) Drain() error {
	buf := make([]byte, drainLimit)
	if _, err := unix.Read(s.fd, buf); err != nil {
		return fmt.Errorf("drain cancel input: %w", err)
	}

	return nil
}
