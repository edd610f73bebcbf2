package job

import (
	"sync"
	"time"

	"leadscraper/internal/logger"
)

// LogType tags a progress/diagnostic event.
type LogType string

const (
	LogInfo         LogType = "info"
	LogSuccess      LogType = "success"
	LogError        LogType = "error"
	LogWarning      LogType = "warning"
	LogProgress     LogType = "progress"
	LogNeighborhood LogType = "neighborhood"
	LogCache        LogType = "cache"
)

type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      LogType   `json:"type"`
	Message   string    `json:"message"`
}

// LogSink keeps an append-only log buffer per job. Entries are never mutated
// or pruned, so any number of pollers can catch up from their own cursor
// without loss or duplication.
type LogSink struct {
	mu   sync.RWMutex
	logs map[string][]LogEntry
	log  *logger.Logger
}

func NewLogSink() *LogSink {
	return &LogSink{
		logs: make(map[string][]LogEntry),
		log:  logger.New("JobLog"),
	}
}

func (s *LogSink) Append(jobID string, t LogType, message string) {
	entry := LogEntry{Timestamp: time.Now(), Type: t, Message: message}

	s.mu.Lock()
	s.logs[jobID] = append(s.logs[jobID], entry)
	s.mu.Unlock()

	// Echo to the process log so operators see job activity without a poller.
	tail := jobID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	switch t {
	case LogError:
		s.log.LogErrorf("[%s] %s", tail, message)
	case LogWarning:
		s.log.LogWarnf("[%s] %s", tail, message)
	case LogSuccess:
		s.log.LogSuccessf("[%s] %s", tail, message)
	default:
		s.log.LogInfof("[%s] %s", tail, message)
	}
}

// ReadSince returns the entries appended after index since, plus the new
// total. Calling it again with the returned total yields exactly the
// subsequent entries; out-of-range cursors are clamped.
func (s *LogSink) ReadSince(jobID string, since int) ([]LogEntry, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.logs[jobID]
	total := len(entries)
	if since < 0 {
		since = 0
	}
	if since > total {
		since = total
	}
	out := make([]LogEntry, total-since)
	copy(out, entries[since:])
	return out, total
}
