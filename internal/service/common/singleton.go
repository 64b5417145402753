//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning indicates another instance of the binary is active.
var ErrAlreadyRunning = errors.New("already running")

// EnsureSingleInstance returns ErrAlreadyRunning when a process other than
// the current one runs the same executable. The alarm supports exactly one
// concurrent instance per machine.
func EnsureSingleInstance(executableName string) error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	if pid, found := findConflict(processes, executableName, os.Getpid()); found {
		return fmt.Errorf("%s (pid %d): %w", executableName, pid, ErrAlreadyRunning)
	}

	return nil
}

// findConflict reports the first process with the given executable name that
// is not the process itself.
func findConflict(processes []ps.Process, executableName string, selfPID int) (int, bool) {
	for _, p := range processes {
		if p.Pid() == selfPID {
			continue
		}

		if p.Executable() == executableName {
			return p.Pid(), true
		}
	}

	return 0, false
}
