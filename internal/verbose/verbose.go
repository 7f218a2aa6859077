// Package verbose writes prefixed diagnostic lines for --verbose runs.
package verbose

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	prefix             = "[verbose]"
	truncationMarker   = "\n... [truncated]"
	defaultMaxBodySize = 4096
)

// Logger fans verbose lines out to a console writer and an optional log
// file. A nil *Logger discards everything.
type Logger struct {
	mu      sync.Mutex
	writers []io.Writer
	maxBody int
}

// New returns a logger writing to every non-nil writer. It returns nil when
// enabled is false or no writer is usable.
func New(enabled bool, writers ...io.Writer) *Logger {
	if !enabled {
		return nil
	}
	usable := make([]io.Writer, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			usable = append(usable, w)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	return &Logger{writers: usable, maxBody: defaultMaxBodySize}
}

// Printf writes one formatted line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.writeLines(fmt.Sprintf(format, args...))
}

// Block writes a header followed by a truncated multi-line body.
func (l *Logger) Block(header, body string) {
	if l == nil {
		return
	}
	trimmed := truncate(body, l.maxBody)
	if strings.TrimSpace(trimmed) == "" {
		l.writeLines(header)
		return
	}
	l.writeLines(header + "\n" + trimmed)
}

func (l *Logger) writeLines(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(text, "\n") {
		for _, w := range l.writers {
			fmt.Fprintf(w, "%s %s\n", prefix, line)
		}
	}
}

// truncate cuts value to at most limit bytes without splitting a rune.
func truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	for limit > 0 && !utf8.RuneStart(value[limit]) {
		limit--
	}
	return value[:limit] + truncationMarker
}
