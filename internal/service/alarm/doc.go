// Package alarm composes the countdown primitive, the keyboard indicator
// and the power collaborator into the two-phase alarm state machine, and
// provides the Run entry point the CLI invokes.
package alarm
