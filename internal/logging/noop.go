package logging

import "context"

// NoopLogger discards everything. Useful as a default and in tests.
type NoopLogger struct{}

func NewNoop() *NoopLogger { return &NoopLogger{} }

func (NoopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (NoopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (NoopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (NoopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (n NoopLogger) With(args ...any) Logger                          { return n }
