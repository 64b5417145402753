package indicator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Selector identifies which keyboard indicator LED to drive.
type Selector string

// Supported keyboard indicators.
const (
	SelectorCapsLock   Selector = "capslock"
	SelectorNumLock    Selector = "numlock"
	SelectorScrollLock Selector = "scrolllock"
)

var (
	// ErrUnknownSelector is returned for indicator names outside the supported set.
	ErrUnknownSelector = errors.New("unknown indicator selector")
	// ErrNotAnInputDevice is returned when a device path does not resolve
	// to a kernel input event device.
	ErrNotAnInputDevice = errors.New("not an input device")
	// ErrNoSuchIndicator is returned when the keyboard has no LED matching
	// the requested selector.
	ErrNoSuchIndicator = errors.New("no such indicator")
)

// eventNamePattern matches kernel event device names such as "event3".
var eventNamePattern = regexp.MustCompile(`^event[0-9]+$`)

// ParseSelector converts user input to a Selector, case-insensitively.
func ParseSelector(s string) (Selector, error) {
	switch Selector(strings.ToLower(strings.TrimSpace(s))) {
	case SelectorCapsLock:
		return SelectorCapsLock, nil
	case SelectorNumLock:
		return SelectorNumLock, nil
	case SelectorScrollLock:
		return SelectorScrollLock, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownSelector)
	}
}

// Resolver maps a keyboard event device path and a selector to the sysfs
// LED control directory. The class directories are fields so tests can
// point the resolver at a fake sysfs tree.
type Resolver struct {
	// InputClassDir is the sysfs input class directory, /sys/class/input by default.
	InputClassDir string
	// LEDClassDir is the sysfs LED class directory, /sys/class/leds by default.
	LEDClassDir string
}

// NewResolver returns a resolver bound to the real sysfs hierarchy.
func NewResolver() *Resolver {
	return &Resolver{
		InputClassDir: "/sys/class/input",
		LEDClassDir:   "/sys/class/leds",
	}
}

// Resolve follows the kernel's naming scheme: the event device eventN
// belongs to an input device inputM, and inputM's LEDs are exposed as
// "inputM::<selector>" under the LED class directory.
func (r *Resolver) Resolve(devicePath string, sel Selector) (string, error) {
	resolved, err := filepath.EvalSymlinks(devicePath)
	if err != nil {
		return "", fmt.Errorf("resolve device path: %w", err)
	}

	eventName := filepath.Base(resolved)
	if !eventNamePattern.MatchString(eventName) {
		return "", fmt.Errorf("%s: %w", devicePath, ErrNotAnInputDevice)
	}

	deviceDir, err := filepath.EvalSymlinks(filepath.Join(r.InputClassDir, eventName, "device"))
	if err != nil {
		return "", fmt.Errorf("%s: %w", devicePath, ErrNotAnInputDevice)
	}

	ledDir := filepath.Join(r.LEDClassDir, filepath.Base(deviceDir)+"::"+string(sel))
	if _, err = os.Stat(filepath.Join(ledDir, "brightness")); err != nil {
		return "", fmt.Errorf("%s has no %s LED: %w", devicePath, sel, ErrNoSuchIndicator)
	}

	return ledDir, nil
}
