// Package countdown implements the interruptible countdown primitive: a
// cancellable timer that renders the remaining time in place on a status
// stream and reports whether it was cancelled by external input or expired
// naturally.
package countdown
