package porm

import (
	"log"
	"os"
)

// Logger receives every statement porm emits, before execution.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type stdLogger struct {
	lg *log.Logger
}

func newStdLogger() *stdLogger {
	return &stdLogger{lg: log.New(os.Stderr, "porm ", log.LstdFlags)}
}

func (l *stdLogger) Debugf(format string, args ...interface{}) {
	l.lg.Printf("[DEBUG] "+format, args...)
}

func (l *stdLogger) Errorf(format string, args ...interface{}) {
	l.lg.Printf("[ERROR] "+format, args...)
}

type nullLogger struct{}

func (nullLogger) Debugf(string, ...interface{}) {}
func (nullLogger) Errorf(string, ...interface{}) {}
