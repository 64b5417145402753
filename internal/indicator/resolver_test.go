package indicator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newFakeSysfs builds a minimal sysfs-like hierarchy: an event device node,
// a by-path symlink to it, the input class entry linking event3 to its
// input5 device, and a scroll lock LED for input5.
func newFakeSysfs(t *testing.T) (resolver *Resolver, devicePath, ledDir string) {
	t.Helper()

	root := t.TempDir()

	// Device node and its by-path alias.
	eventNode := filepath.Join(root, "event3")
	require.NoError(t, os.WriteFile(eventNode, nil, 0o644))

	byPath := filepath.Join(root, "by-path")
	require.NoError(t, os.Mkdir(byPath, 0o755))

	devicePath = filepath.Join(byPath, "platform-i8042-serio-0-event-kbd")
	require.NoError(t, os.Symlink(eventNode, devicePath))

	// Input class: event3 belongs to input5.
	inputDevice := filepath.Join(root, "devices", "input5")
	require.NoError(t, os.MkdirAll(inputDevice, 0o755))

	inputClass := filepath.Join(root, "class-input")
	require.NoError(t, os.MkdirAll(filepath.Join(inputClass, "event3"), 0o755))
	require.NoError(t, os.Symlink(inputDevice, filepath.Join(inputClass, "event3", "device")))

	// LED class: input5 has a scroll lock LED.
	ledClass := filepath.Join(root, "class-leds")
	ledDir = filepath.Join(ledClass, "input5::scrolllock")
	require.NoError(t, os.MkdirAll(ledDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ledDir, "brightness"), []byte("0\n"), 0o644))

	resolver = &Resolver{
		InputClassDir: inputClass,
		LEDClassDir:   ledClass,
	}

	return resolver, devicePath, ledDir
}

// TestResolve follows the event device to its LED control directory.
func TestResolve(t *testing.T) {
	t.Parallel()

	resolver, devicePath, ledDir := newFakeSysfs(t)

	got, err := resolver.Resolve(devicePath, SelectorScrollLock)
	require.NoError(t, err)
	require.Equal(t, ledDir, got)
}

// TestResolveNotAnInputDevice rejects paths outside the input device namespace.
func TestResolveNotAnInputDevice(t *testing.T) {
	t.Parallel()

	resolver, _, _ := newFakeSysfs(t)

	// A file that is not an eventN node.
	mouse := filepath.Join(t.TempDir(), "mouse0")
	require.NoError(t, os.WriteFile(mouse, nil, 0o644))

	_, err := resolver.Resolve(mouse, SelectorScrollLock)
	require.ErrorIs(t, err, ErrNotAnInputDevice)

	// An event node the input class has never heard of.
	stray := filepath.Join(t.TempDir(), "event42")
	require.NoError(t, os.WriteFile(stray, nil, 0o644))

	_, err = resolver.Resolve(stray, SelectorScrollLock)
	require.ErrorIs(t, err, ErrNotAnInputDevice)

	// A path that does not exist at all.
	_, err = resolver.Resolve(filepath.Join(t.TempDir(), "nope"), SelectorScrollLock)
	require.Error(t, err)
}

// TestResolveNoSuchIndicator reports a missing LED for the selector.
func TestResolveNoSuchIndicator(t *testing.T) {
	t.Parallel()

	resolver, devicePath, _ := newFakeSysfs(t)

	_, err := resolver.Resolve(devicePath, SelectorCapsLock)
	require.ErrorIs(t, err, ErrNoSuchIndicator)
}

// TestParseSelector verifies the supported set and case-insensitivity.
func TestParseSelector(t *testing.T) {
	t.Parallel()

	cases := map[string]Selector{
		"capslock":   SelectorCapsLock,
		"numlock":    SelectorNumLock,
		"scrolllock": SelectorScrollLock,
		"ScrollLock": SelectorScrollLock,
		" numlock ":  SelectorNumLock,
	}
	for input, want := range cases {
		got, err := ParseSelector(input)
		require.NoError(t, err, "ParseSelector(%q)", input)
		require.Equal(t, want, got)
	}

	_, err := ParseSelector("shiftlock")
	require.ErrorIs(t, err, ErrUnknownSelector)
}
