package core

// Logger interface for raytracer logging.
// The named loggers in internal/log satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// NopLogger discards everything; useful in tests and library callers that do not log
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{})   {}
func (NopLogger) Infof(format string, args ...interface{})    {}
func (NopLogger) Noticef(format string, args ...interface{})  {}
func (NopLogger) Warningf(format string, args ...interface{}) {}
