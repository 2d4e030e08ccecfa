package history

import "time"

// Record is implemented by history entries that deduplicate by a stable key
// and refresh their metadata when the underlying item is used again.
type Record[R any] interface {
	// RecordKey returns the deduplication key for the record.
	RecordKey() string
	// Touched returns a copy of the record promoted to the supplied usage time.
	Touched(occurredAt time.Time) R
}

// CommandRecord describes one remembered shell command submission.
type CommandRecord struct {
	Text     string    `json:"text"`
	LastUsed time.Time `json:"last_used"`
}

// NewCommandRecord builds a record for the supplied command text.
func NewCommandRecord(commandText string) CommandRecord {
	return CommandRecord{Text: commandText}
}

// RecordKey identifies command records by their literal text.
func (record CommandRecord) RecordKey() string {
	return record.Text
}

// Touched stamps the record with the latest usage time.
func (record CommandRecord) Touched(occurredAt time.Time) CommandRecord {
	record.LastUsed = occurredAt
	return record
}

// AppUsageRecord describes how recently and how often an application was launched.
type AppUsageRecord struct {
	Identifier string    `json:"id"`
	LastUsed   time.Time `json:"last_used"`
	Count      int       `json:"count"`
}

// NewAppUsageRecord builds a usage record for the supplied application identifier.
func NewAppUsageRecord(applicationIdentifier string) AppUsageRecord {
	return AppUsageRecord{Identifier: applicationIdentifier}
}

// RecordKey identifies usage records by application identifier.
func (record AppUsageRecord) RecordKey() string {
	return record.Identifier
}

// Touched stamps the record with the latest usage time and counts the launch.
func (record AppUsageRecord) Touched(occurredAt time.Time) AppUsageRecord {
	record.LastUsed = occurredAt
	record.Count++
	return record
}
