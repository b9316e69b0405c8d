// Package logging provides a minimal logging interface and adapters for
// scoremesh.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the coordinator, writers and host drivers use for
// observability. This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ZapAdapter for hosts already carrying a zap stack
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	coord := run.New(cfg, func(o *run.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
