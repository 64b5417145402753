// Package config defines the alarm settings used by the lights-out binary
// and provides helpers to load, validate and save them in YAML format.
//
// Durations in the settings file use the same compact syntax as the command
// line flags ("3h", "1h30m", "90m").
package config
