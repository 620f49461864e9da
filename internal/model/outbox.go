package model

import (
	"encoding/json"
	"time"
)

// OutboxEvent is a pending change event awaiting publication. Rows are
// written in the same request that performed the change and drained by a
// background processor.
type OutboxEvent struct {
	ID          int64           `db:"id" json:"id"`
	EventType   string          `db:"event_type" json:"event_type"`
	Payload     json.RawMessage `db:"payload" json:"payload"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}
