// Package logger provides leveled logging for the gamebank CLI. It wraps the
// standard log package with level filtering and either plain text or
// JSON-line output, selected at Init time from configuration.
package logger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents a logging level
type Level int

const (
	// DebugLevel logs are typically voluminous and disabled outside development.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual human review.
	WarnLevel
	// ErrorLevel logs are high-priority; a smooth session shouldn't produce any.
	ErrorLevel
)

var levelNames = map[Level]string{
	DebugLevel: "debug",
	InfoLevel:  "info",
	WarnLevel:  "warn",
	ErrorLevel: "error",
}

type logger struct {
	level Level
	json  bool
	out   *log.Logger
}

var defaultLogger *logger

// Init initializes the default logger with the specified level and format
// ("text" or "json"). Unknown levels fall back to info.
func Init(level string, format string) {
	l := InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		l = DebugLevel
	case "warn":
		l = WarnLevel
	case "error":
		l = ErrorLevel
	}

	useJSON := strings.ToLower(format) == "json"
	flags := 0
	if !useJSON {
		flags = log.LstdFlags | log.Lmicroseconds
	}

	defaultLogger = &logger{
		level: l,
		json:  useJSON,
		out:   log.New(os.Stderr, "", flags),
	}
}

func emit(level Level, format string, args ...interface{}) {
	if defaultLogger == nil || defaultLogger.level > level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if defaultLogger.json {
		line, err := json.Marshal(map[string]string{
			"time":  time.Now().Format(time.RFC3339),
			"level": levelNames[level],
			"msg":   msg,
		})
		if err == nil {
			_ = defaultLogger.out.Output(3, string(line))
		}
		return
	}
	_ = defaultLogger.out.Output(3, fmt.Sprintf("[%s] %s", strings.ToUpper(levelNames[level]), msg))
}

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) {
	emit(DebugLevel, format, args...)
}

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) {
	emit(InfoLevel, format, args...)
}

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) {
	emit(WarnLevel, format, args...)
}

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) {
	emit(ErrorLevel, format, args...)
}

// Fatal logs a message at ErrorLevel and exits
func Fatal(format string, args ...interface{}) {
	if defaultLogger != nil {
		emit(ErrorLevel, "[FATAL] "+format, args...)
	} else {
		log.Printf("[FATAL] "+format, args...)
	}
	os.Exit(1)
}
