// Package logging provides concrete implementations of the cadpost.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes plain prefixed lines to stderr (or any io.Writer)
//   - ZapLogger: Emits structured JSON records through go.uber.org/zap
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
