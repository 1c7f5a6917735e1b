package log

// NoOpLogger implements Logger and discards everything
type NoOpLogger struct{}

// NewNoOpLogger returns a NoOpLogger
func NewNoOpLogger() NoOpLogger {
	return NoOpLogger{}
}

func (n NoOpLogger) Info(msg string, keyvals ...interface{}) {}

func (n NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

func (n NoOpLogger) Error(msg string, keyvals ...interface{}) {}

func (n NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// With returns the same NoOpLogger
func (n NoOpLogger) With(keyvals ...interface{}) Logger {
	return n
}
