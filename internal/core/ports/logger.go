package ports

import "io"

// Logger is the application logging interface.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Info logs an informational message with optional key/value attributes.
	Info(msg string, args ...any)

	// Warn logs a warning message with optional key/value attributes.
	Warn(msg string, args ...any)

	// Error logs an error, rendering wrapped cause chains hierarchically.
	Error(err error)

	// SetOutput redirects log output. Passing nil restores stderr.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty output.
	SetJSON(enable bool)
}
