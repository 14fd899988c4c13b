package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSnapshotRefreshed EventType = "snapshot_refreshed"
	EventRecordsIngested   EventType = "records_ingested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SnapshotRefreshedPayload describes a reloaded event snapshot.
type SnapshotRefreshedPayload struct {
	Version    string    `json:"version"`
	EventCount int       `json:"event_count"`
	LoadedAt   time.Time `json:"loaded_at"`
}

// RecordsIngestedPayload describes a completed ingestion batch.
type RecordsIngestedPayload struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}
