package debug

import (
	"fmt"
	"log"
	"time"
)

// Logger writes timestamped trace lines through the standard logger when
// enabled. A nil *Logger is valid and discards everything.
type Logger struct {
	enabled bool
	prefix  string
}

// New returns a logger tagging every line with prefix.
func New(enabled bool, prefix string) *Logger {
	return &Logger{enabled: enabled, prefix: prefix}
}

// Enabled reports whether trace output is on.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Printf writes one trace line if tracing is enabled
func (l *Logger) Printf(format string, args ...interface{}) {
	if !l.Enabled() {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	message := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		log.Printf("[%s] %s: %s", timestamp, l.prefix, message)
		return
	}
	log.Printf("[%s] %s", timestamp, message)
}

// Header marks the start of a traced operation.
func (l *Logger) Header(operation string) {
	l.Printf("=== %s START ===", operation)
}

// Footer marks the end of a traced operation.
func (l *Logger) Footer(operation string) {
	l.Printf("=== %s END ===", operation)
}

// Timing logs start and, when the returned func is called, the elapsed time
func (l *Logger) Timing(operation string) func() {
	if !l.Enabled() {
		return func() {}
	}

	start := time.Now()
	l.Printf("Starting: %s", operation)

	return func() {
		l.Printf("Completed: %s (took %v)", operation, time.Since(start))
	}
}
