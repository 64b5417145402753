// Package power holds the never-returning process-image replacements the
// alarm ends in: the system power-off and the elevated re-invocation of the
// binary. Both go through the Execer interface so tests can substitute a
// fake that records the invocation instead of replacing the test process.
package power
