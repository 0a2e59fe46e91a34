// Package logging constructs the slog loggers used across comicconv and
// aliases the slog attribute helpers so call sites stay terse.
//
// Two handler formats exist: "console" for interactive use and "json" for
// machine consumption. Quiet runs get the no-op logger from NewNop.
package logging
