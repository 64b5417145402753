package power

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

const (
	// shutdownCommand is the program that powers the machine off.
	shutdownCommand = "poweroff"
	// escalationCommand re-invokes the process with root privileges.
	escalationCommand = "sudo"
)

// errEmptyArgv is returned when Exec is invoked without a program to run.
var errEmptyArgv = errors.New("empty argv")

// Execer replaces the current process image with another program.
// Exec does not return on success; callers treat a return as failure.
type Execer interface {
	Exec(argv []string) error
}

// SystemExecer resolves argv[0] on PATH and performs a real execve.
type SystemExecer struct{}

// Exec replaces the current process image. The environment is inherited.
func (SystemExecer) Exec(argv []string) error {
	if len(argv) == 0 {
		return errEmptyArgv
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("locate %s: %w", argv[0], err)
	}

	if err = unix.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}

	return nil
}

// Shutdown replaces the current process with a system power-off invocation.
// It does not return on success.
func Shutdown(e Execer) error {
	return e.Exec([]string{shutdownCommand})
}

// IsElevated reports whether the process already runs with root privileges.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// RelaunchElevated replaces the current process with an elevated
// re-invocation of itself with identical arguments. It does not return on
// success.
func RelaunchElevated(e Execer) error {
	argv := make([]string, 0, len(os.Args)+1)
	argv = append(argv, escalationCommand)
	argv = append(argv, os.Args...)

	return e.Exec(argv)
}
