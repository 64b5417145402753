package indicator

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Indicator drives one keyboard LED through its sysfs control files.
// The LED's maximum intensity is read once at construction and reused for
// every activation; logical "off" is always intensity zero.
type Indicator struct {
	// brightnessPath is the live intensity control file of the LED.
	brightnessPath string
	// max is the cached maximum intensity value, kept as raw bytes so
	// activation is a single write.
	max []byte
}

// brightnessFileMode is used when (re)writing the brightness control file.
const brightnessFileMode = 0o644

// New binds an indicator to the LED directory and caches its maximum
// intensity. It fails when the directory is not a readable LED control
// directory.
func New(ledDir string) (*Indicator, error) {
	ledDir = filepath.Clean(ledDir)

	raw, err := os.ReadFile(filepath.Join(ledDir, "max_brightness"))
	if err != nil {
		return nil, fmt.Errorf("read max brightness: %w", err)
	}

	value := strings.TrimSpace(string(raw))
	if _, err = strconv.Atoi(value); err != nil {
		return nil, fmt.Errorf("parse max brightness %q: %w", value, err)
	}

	return &Indicator{
		brightnessPath: filepath.Join(ledDir, "brightness"),
		max:            []byte(value),
	}, nil
}

// Activate lights the indicator by writing the cached maximum intensity.
// Write failures are surfaced to the caller, not retried.
func (i *Indicator) Activate() error {
	return i.write(i.max)
}

// Deactivate turns the indicator off by writing a zero intensity.
// It is safe to call even if Activate was never called.
func (i *Indicator) Deactivate() error {
	return i.write([]byte("0"))
}

// write updates the live intensity control file.
func (i *Indicator) write(value []byte) error {
	if err := os.WriteFile(i.brightnessPath, value, brightnessFileMode); err != nil {
		return fmt.Errorf("write brightness: %w", err)
	}

	return nil
}
