// Package logging builds the slog loggers used across subgen. The console
// handler renders compact key=value lines for terminals; the JSON handler is
// intended for log files and machine consumption.
package logging
