package eventlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of most recent events a Log retains
const DefaultCapacity = 50

// Severity classifies an event
type Severity uint8

const (
	Info Severity = iota
	Success
	Warning
	Error
)

// ErrUnknownSeverity is returned when parsing an unsupported severity name
var ErrUnknownSeverity = fmt.Errorf("unknown severity")

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "undefined"
	}
}

// MarshalText encodes the severity as its name
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case Info, Success, Warning, Error:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownSeverity, s)
	}
}

// UnmarshalText decodes a severity name
func (s *Severity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "info":
		*s = Info
	case "success":
		*s = Success
	case "warning":
		*s = Warning
	case "error":
		*s = Error
	default:
		return fmt.Errorf("%w %q", ErrUnknownSeverity, b)
	}
	return nil
}

// Event is one entry of the log
type Event struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is a bounded, append-only event log. Once full, appending
// an event silently discards the oldest one.
// A Log is not safe for concurrent use.
type Log struct {
	ring []Event
	// position of the next write
	next int
	// number of retained events
	n   int
	now func() time.Time
}

// New returns a Log retaining at most capacity events.
// A capacity below 1 falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Log{ring: make([]Event, capacity), now: time.Now}
}

// WithClock replaces the timestamp source, mostly for tests
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

// Append records a new event and returns it
func (l *Log) Append(severity Severity, message string) Event {
	e := Event{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		Timestamp: l.now(),
	}

	l.ring[l.next] = e
	l.next = (l.next + 1) % len(l.ring)
	if l.n < len(l.ring) {
		l.n++
	}

	return e
}

// Appendf records a new event with a formatted message
func (l *Log) Appendf(severity Severity, format string, args ...interface{}) Event {
	return l.Append(severity, fmt.Sprintf(format, args...))
}

// Events returns a copy of the retained events, newest first
func (l *Log) Events() []Event {
	events := make([]Event, l.n)
	for i := 0; i < l.n; i++ {
		// walk backwards from the last write
		idx := (l.next - 1 - i + len(l.ring)) % len(l.ring)
		events[i] = l.ring[idx]
	}
	return events
}

// Len returns the number of retained events
func (l *Log) Len() int {
	return l.n
}

// Cap returns the maximum number of retained events
func (l *Log) Cap() int {
	return len(l.ring)
}

// Reset drops every event
func (l *Log) Reset() {
	for i := range l.ring {
		l.ring[i] = Event{}
	}
	l.next, l.n = 0, 0
}
