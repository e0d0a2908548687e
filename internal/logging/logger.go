package logging

// Logger is the structured logger used across the application.
//
// All methods accept alternating key-value pairs, the same shape as
// slog.Logger and zap.SugaredLogger.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
