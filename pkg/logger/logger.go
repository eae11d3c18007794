// pkg/logger/logger.go
package logger

import (
	"log"
	"os"
)

// Logger is a thin wrapper around the standard log.Logger with leveled prefixes.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to stdout, tagged with the given component name.
func New(component string) *Logger {
	return &Logger{
		Logger: log.New(os.Stdout, component+" ", log.LstdFlags),
	}
}

// Info logs an informational message.
func (l *Logger) Info(v ...interface{}) {
	l.SetPrefix("INFO: ")
	l.Println(v...)
}

// Infof logs a formatted informational message.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.SetPrefix("INFO: ")
	l.Printf(format, v...)
}

// Warn logs a warning message.
func (l *Logger) Warn(v ...interface{}) {
	l.SetPrefix("WARN: ")
	l.Println(v...)
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.SetPrefix("WARN: ")
	l.Printf(format, v...)
}

// Error logs an error message.
func (l *Logger) Error(v ...interface{}) {
	l.SetPrefix("ERROR: ")
	l.Println(v...)
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.SetPrefix("ERROR: ")
	l.Printf(format, v...)
}
