package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope is the canonical event envelope. All messages published to NATS
// follow this format.
type Envelope struct {
	ID            uuid.UUID       `json:"id"`
	CorrelationID uuid.UUID       `json:"correlation_id"`
	Topic         string          `json:"topic"`
	EventType     string          `json:"event_type"`
	Version       string          `json:"version"`
	Timestamp     time.Time       `json:"timestamp"`
	Payload       json.RawMessage `json:"payload"`
}

// DatasetPublishedEvent announces that a publication run completed and the
// output file was replaced.
type DatasetPublishedEvent struct {
	RunID       uuid.UUID `json:"run_id"`
	Dataset     string    `json:"dataset"`      // e.g. "single-asset-rates"
	OutputPath  string    `json:"output_path"`  // where the CSV was written
	RowCount    int       `json:"row_count"`    // rows written, header excluded
	FetchedAt   time.Time `json:"fetched_at"`   // when the source snapshot was taken
	PublishedAt time.Time `json:"published_at"` // when the output rename completed
}
