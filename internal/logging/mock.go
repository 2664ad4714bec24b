package logging

import "fmt"

// MockLogger is a mock implementation of the Logger interface for testing.
// Derived loggers returned by the With* methods share the same entry sink,
// so assertions on the root logger observe everything its children emitted.
type MockLogger struct {
	sink          *[]Entry
	pendingError  error
	pendingFields []Field
}

// Entry represents a single log entry captured by MockLogger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

// NewMockLogger creates a MockLogger with an empty entry sink.
func NewMockLogger() *MockLogger {
	entries := make([]Entry, 0)
	return &MockLogger{sink: &entries}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	if m.sink == nil {
		entries := make([]Entry, 0)
		m.sink = &entries
	}
	all := append(append([]Field{}, m.pendingFields...), fields...)
	*m.sink = append(*m.sink, Entry{Level: level, Message: msg, Fields: all, Err: m.pendingError})
}

// Debug captures a debug-level entry.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info captures an info-level entry.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn captures a warn-level entry.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error captures an error-level entry.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// Fatal captures a fatal-level entry without exiting, so tests can assert on it.
func (m *MockLogger) Fatal(msg string, fields ...Field) { m.record("FATAL", msg, fields) }

// Fatalf captures a formatted fatal-level entry without exiting.
func (m *MockLogger) Fatalf(msg string, args ...interface{}) {
	m.record("FATAL", fmt.Sprintf(msg, args...), nil)
}

// WithError returns a derived logger with an error attached to subsequent entries.
func (m *MockLogger) WithError(err error) Logger {
	return &MockLogger{sink: m.sink, pendingError: err, pendingFields: m.pendingFields}
}

// WithField returns a derived logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a derived logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	all := append(append([]Field{}, m.pendingFields...), fields...)
	return &MockLogger{sink: m.sink, pendingError: m.pendingError, pendingFields: all}
}

// Entries returns all captured entries in emission order.
func (m *MockLogger) Entries() []Entry {
	if m.sink == nil {
		return nil
	}
	return *m.sink
}

// HasEntry reports whether an entry with the given level and message was captured.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// MessagesAt returns the messages captured at the given level, in order.
func (m *MockLogger) MessagesAt(level string) []string {
	var msgs []string
	for _, entry := range m.Entries() {
		if entry.Level == level {
			msgs = append(msgs, entry.Message)
		}
	}
	return msgs
}
