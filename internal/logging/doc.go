// Package logging assembles structured slog loggers and formatting helpers used
// across krimiwiki commands.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so audit code can tag log lines with the
// run ID, series, and wiki page under inspection. Diagnostics always go to
// stderr; stdout is reserved for the pipe-delimited reports the commands
// print. The package also provides a no-op logger for tests.
package logging
