// Package logging assembles structured slog loggers and formatting helpers used
// across subforge.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so pipeline code tags log lines with
// run IDs, file names and event types in a consistent shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
