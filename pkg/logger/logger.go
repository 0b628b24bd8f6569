// Package logger provides level-based logging (debug, info, warn, error)
// with per-component loggers.
package logger

import (
	"log"
	"sync"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.RWMutex
	minLevel Level = LevelInfo
)

func parseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// SetLevel sets the minimum level to log for all loggers. Default is info.
func SetLevel(s string) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = parseLevel(s)
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= minLevel
}

// Logger logs with a fixed component name prefix.
type Logger struct {
	component string
}

// New returns a logger for the named component (e.g. "collector", "store").
func New(component string) *Logger {
	return &Logger{component: component}
}

// Debugf logs if level is debug or lower.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		log.Printf("[DEBUG] "+l.component+": "+format, v...)
	}
}

// Infof logs if level is info or lower.
func (l *Logger) Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		log.Printf("[INFO] "+l.component+": "+format, v...)
	}
}

// Warnf logs if level is warn or lower.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		log.Printf("[WARN] "+l.component+": "+format, v...)
	}
}

// Errorf logs if level is error (always).
func (l *Logger) Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		log.Printf("[ERROR] "+l.component+": "+format, v...)
	}
}
