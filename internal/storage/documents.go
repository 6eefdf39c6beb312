// Package storage persists documents, candidate profiles and the
// extraction queue in Postgres. Every mutation is a single-row update
// keyed by id; the queue's (candidate_id, document_id) uniqueness
// constraint is the only cross-row invariant.
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

type DocumentStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewDocumentStore(db *sql.DB, log logger.Logger) *DocumentStore {
	return &DocumentStore{db: db, logger: log}
}

// Insert stores a new document row, assigning an id when absent.
func (s *DocumentStore) Insert(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	doc.Type = models.NormalizeDocumentType(doc.Type)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, entity_type, entity_id, type, name, file_path, file_url, mime_type, extracted_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.EntityType, doc.EntityID, doc.Type, doc.Name,
		doc.FilePath, doc.FileURL, doc.MimeType, doc.ExtractedText, doc.CreatedAt)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("document", err)
	}
	return nil
}

// Get fetches a document by id.
func (s *DocumentStore) Get(ctx context.Context, id string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, entity_type, entity_id, type, name, file_path, file_url, mime_type, extracted_text, created_at
		FROM documents WHERE id = $1`, id)

	return scanDocument(row, id)
}

// LatestCV returns the most recently created CV document for a candidate.
// At most one document per (entity, type) is authoritative and the newest
// wins, so ordering by created_at resolves duplicates.
func (s *DocumentStore) LatestCV(ctx context.Context, candidateID string) (*models.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, entity_type, entity_id, type, name, file_path, file_url, mime_type, extracted_text, created_at
		FROM documents
		WHERE entity_type = 'candidate' AND entity_id = $1 AND type = 'cv'
		ORDER BY created_at DESC
		LIMIT 1`, candidateID)

	return scanDocument(row, candidateID)
}

// UpdateExtractedText stores the plain text extracted from the document.
func (s *DocumentStore) UpdateExtractedText(ctx context.Context, id, text string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET extracted_text = $1 WHERE id = $2`, text, id)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("document", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pipeerrors.NewDocumentNotFoundError(id)
	}
	return nil
}

func scanDocument(row *sql.Row, id string) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(&doc.ID, &doc.EntityType, &doc.EntityID, &doc.Type, &doc.Name,
		&doc.FilePath, &doc.FileURL, &doc.MimeType, &doc.ExtractedText, &doc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, pipeerrors.NewDocumentNotFoundError(id)
	}
	if err != nil {
		return nil, pipeerrors.NewQueryExecutionFailedError("select document", err)
	}
	return &doc, nil
}
