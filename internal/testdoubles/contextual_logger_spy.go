package testdoubles

import (
	"context"
	"sync"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/eventstore"
)

// LogRecord is one captured log call.
type LogRecord struct {
	Level   string
	Message string
	Args    []any
}

// Attr returns the value logged for key.
func (r LogRecord) Attr(key string) (any, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if r.Args[i] == key {
			return r.Args[i+1], true
		}
	}

	return nil, false
}

// ContextualLoggerSpy captures calls of both the Logger and the ContextualLogger interface.
type ContextualLoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

func NewContextualLoggerSpy() *ContextualLoggerSpy {
	return &ContextualLoggerSpy{}
}

func (s *ContextualLoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.record("debug", msg, args)
}

func (s *ContextualLoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.record("info", msg, args)
}

func (s *ContextualLoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.record("warn", msg, args)
}

func (s *ContextualLoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.record("error", msg, args)
}

func (s *ContextualLoggerSpy) Debug(msg string, args ...any) { s.record("debug", msg, args) }
func (s *ContextualLoggerSpy) Info(msg string, args ...any)  { s.record("info", msg, args) }
func (s *ContextualLoggerSpy) Warn(msg string, args ...any)  { s.record("warn", msg, args) }
func (s *ContextualLoggerSpy) Error(msg string, args ...any) { s.record("error", msg, args) }

func (s *ContextualLoggerSpy) record(level string, msg string, args []any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: append([]any(nil), args...)})
}

// Records returns a copy of the captured calls with the given level.
func (s *ContextualLoggerSpy) Records(level string) []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []LogRecord
	for _, r := range s.records {
		if r.Level == level {
			records = append(records, r)
		}
	}

	return records
}

// HasLog checks if a log with the level and message was captured.
func (s *ContextualLoggerSpy) HasLog(level string, message string) bool {
	for _, r := range s.Records(level) {
		if r.Message == message {
			return true
		}
	}

	return false
}

var (
	_ eventstore.ContextualLogger = (*ContextualLoggerSpy)(nil)
	_ eventstore.Logger           = (*ContextualLoggerSpy)(nil)
)
