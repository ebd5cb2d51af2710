// Package eventlog writes timestamped service events.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// EventLogger writes timestamped events to stderr and, when a file path is
// configured, appends them to that file as well. It is safe for concurrent use.
type EventLogger struct {
	tag      string
	filePath string
	out      io.Writer
	now      func() time.Time
	mu       sync.Mutex
}

// New creates a logger tagging every line with tag. An empty filePath logs to
// stderr only, which is what journald picks up under systemd.
func New(tag, filePath string) *EventLogger {
	return &EventLogger{tag: tag, filePath: filePath, out: os.Stderr, now: time.Now}
}

// NewWriter creates a logger writing to w only.
func NewWriter(tag string, w io.Writer) *EventLogger {
	return &EventLogger{tag: tag, out: w, now: time.Now}
}

// Log writes a single event with timestamp. Errors writing the log file are
// ignored but printed to standard error.
func (el *EventLogger) Log(format string, args ...any) {
	el.mu.Lock()
	defer el.mu.Unlock()
	msg := fmt.Sprintf(format, args...)
	ts := el.now().Format(time.RFC3339)
	line := fmt.Sprintf("%s %s: %s\n", ts, el.tag, msg)
	if el.out != nil {
		io.WriteString(el.out, line)
	}
	if el.filePath == "" {
		return
	}
	// Open file in append mode, create if not exists
	f, err := os.OpenFile(el.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log error: %v\n", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "log write error: %v\n", err)
	}
}
