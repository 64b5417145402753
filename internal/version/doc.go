// Package version exposes build metadata injected via ldflags and the
// cobra `version` subcommand that prints it.
package version
