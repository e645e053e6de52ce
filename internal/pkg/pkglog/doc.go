// Package pkglog configures the process-wide slog logger.
//
// Records are JSON with "ts" and "severity" keys, a "service" attribute and,
// for request-scoped logs, the "_cID" correlation id taken from the context.
package pkglog
