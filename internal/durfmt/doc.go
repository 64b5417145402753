// Package durfmt parses and formats compact duration strings such as
// "3h", "1h30m" or "90m". It is the single duration syntax shared by the
// command line, the settings file and the countdown display.
package durfmt
