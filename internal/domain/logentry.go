package domain

import (
	"time"
)

// Log level constants for the persisted log facility.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// LogEntry is a structured application event persisted to the store.
// Persistence is best effort; a failed write is never surfaced to callers.
type LogEntry struct {
	ID        int64          `json:"id"`
	Level     string         `json:"level"`
	Module    string         `json:"module"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
