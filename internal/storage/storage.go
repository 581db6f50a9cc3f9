package storage

// Record is one persisted feedback event. Date is an ISO 8601 calendar
// date (YYYY-MM-DD). Records are immutable once appended; the log is
// logically append-only.
type Record struct {
	Date       string `json:"date"`
	Level      string `json:"level"`
	Model      string `json:"model"`
	Reflection string `json:"reflection"`
	Score      int    `json:"score"`
}

// Recorder abstracts persistence of feedback records.
// Load must return records in append order and an empty slice when no
// backing file exists yet. Implementations must be safe for concurrent
// use.
type Recorder interface {
	Append(record Record) error
	Load() ([]Record, error)
}
