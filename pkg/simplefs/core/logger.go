package core

// Logger interface defines logging capabilities
type Logger interface {
	Info() LogEvent
	Debug() LogEvent
	Warn() LogEvent
	Error() LogEvent
	Trace() LogEvent
}

// LogEvent interface for structured logging
type LogEvent interface {
	Str(key, val string) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Err(err error) LogEvent
	Bool(key string, val bool) LogEvent
	Msg(msg string)
}

// NopLogger returns a Logger that discards everything.
func NopLogger() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Info() LogEvent  { return nopEvent{} }
func (nopLogger) Debug() LogEvent { return nopEvent{} }
func (nopLogger) Warn() LogEvent  { return nopEvent{} }
func (nopLogger) Error() LogEvent { return nopEvent{} }
func (nopLogger) Trace() LogEvent { return nopEvent{} }

type nopEvent struct{}

func (e nopEvent) Str(string, string) LogEvent  { return e }
func (e nopEvent) Int(string, int) LogEvent     { return e }
func (e nopEvent) Int64(string, int64) LogEvent { return e }
func (e nopEvent) Err(error) LogEvent           { return e }
func (e nopEvent) Bool(string, bool) LogEvent   { return e }
func (nopEvent) Msg(string)                     {}
