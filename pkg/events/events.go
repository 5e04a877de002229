// Package events defines the document lifecycle events published to Kafka.
package events

import "time"

// Event types.
const (
	TypeDocumentIngested = "document.ingested"
	TypeDocumentDeleted  = "document.deleted"
)

// DocumentEvent is emitted after a document is ingested or deleted.
type DocumentEvent struct {
	Type   string    `json:"type"`
	DocID  string    `json:"doc_id"`
	Title  string    `json:"title,omitempty"`
	Chunks int       `json:"chunks,omitempty"`
	At     time.Time `json:"at"`
}
