// internal/models/document.go
package models

import "time"

// EntityType identifies the owning entity of a document.
type EntityType string

const (
	EntityCandidate EntityType = "candidate"
	EntityClient    EntityType = "client"
	EntityJob       EntityType = "job"
)

// Document is a stored binary file tied to an entity. At most one document per
// (entity, type) is authoritative for extraction purposes; the most recently
// created one wins.
type Document struct {
	ID            string     `json:"id"`
	EntityType    EntityType `json:"entityType"`
	EntityID      string     `json:"entityId"`
	Type          string     `json:"type"` // normalized document type, e.g. "cv"
	Name          string     `json:"name"`
	FilePath      string     `json:"filePath"`
	FileURL       string     `json:"fileUrl"`
	MimeType      string     `json:"mimeType"`
	ExtractedText *string    `json:"extractedText,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// QueueItemStatus is the lifecycle state of an extraction queue item.
type QueueItemStatus string

const (
	QueueStatusPending    QueueItemStatus = "pending"
	QueueStatusProcessing QueueItemStatus = "processing"
	QueueStatusCompleted  QueueItemStatus = "completed"
	QueueStatusFailed     QueueItemStatus = "failed"
)

// QueueItem is a unit of pending extraction work tied to one
// (candidate, document) pair. Duplicate enqueues collapse to one row.
type QueueItem struct {
	ID          string          `json:"id"`
	CandidateID string          `json:"candidateId"`
	DocumentID  string          `json:"documentId"`
	Status      QueueItemStatus `json:"status"`
	Attempts    int             `json:"attempts"`
	Error       *string         `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
