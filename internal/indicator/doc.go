// Package indicator controls keyboard indicator LEDs (caps lock, num lock,
// scroll lock) through the Linux sysfs LED class interface, and resolves
// the LED belonging to a given keyboard event device.
package indicator
