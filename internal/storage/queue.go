// internal/storage/queue.go
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

// QueueStore manages extraction queue rows. The table carries a unique
// constraint on (candidate_id, document_id) so duplicate enqueues collapse
// into a single row. Failed items keep their error and attempt count and
// are never requeued automatically.
type QueueStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewQueueStore(db *sql.DB, log logger.Logger) *QueueStore {
	return &QueueStore{db: db, logger: log}
}

// Enqueue upserts a queue item for the (candidate, document) pair. An
// existing row is reset to pending so a re-submission of a failed item
// gets picked up again.
func (s *QueueStore) Enqueue(ctx context.Context, candidateID, documentID string) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO extraction_queue (id, candidate_id, document_id, status, attempts, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending', 0, $4, $4)
		ON CONFLICT (candidate_id, document_id)
		DO UPDATE SET status = 'pending', error = NULL, updated_at = $4
		RETURNING id`,
		id, candidateID, documentID, now)

	var gotID string
	if err := row.Scan(&gotID); err != nil {
		return "", pipeerrors.NewPersistenceFailedError("queue item", err)
	}

	s.logger.Debug("queue item enqueued", map[string]interface{}{
		"queueItemId": gotID,
		"candidateId": candidateID,
		"documentId":  documentID,
	})
	return gotID, nil
}

// PendingBatch claims up to limit pending items, oldest first, marking them
// processing in the same statement so concurrent managers do not double-claim.
func (s *QueueStore) PendingBatch(ctx context.Context, limit int) ([]models.QueueItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		UPDATE extraction_queue
		SET status = 'processing', updated_at = NOW()
		WHERE id IN (
			SELECT id FROM extraction_queue
			WHERE status = 'pending'
			ORDER BY created_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, candidate_id, document_id, status, attempts, error, created_at, updated_at`,
		limit)
	if err != nil {
		return nil, pipeerrors.NewQueryExecutionFailedError("claim pending batch", err)
	}
	defer rows.Close()

	var items []models.QueueItem
	for rows.Next() {
		var item models.QueueItem
		if err := rows.Scan(&item.ID, &item.CandidateID, &item.DocumentID, &item.Status,
			&item.Attempts, &item.Error, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, pipeerrors.NewQueryExecutionFailedError("scan queue item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, pipeerrors.NewQueryExecutionFailedError("claim pending batch", err)
	}

	return items, nil
}

// MarkCompleted transitions an item to completed.
func (s *QueueStore) MarkCompleted(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, models.QueueStatusCompleted)
}

// MarkFailed records the failure, increments attempts and keeps the item
// failed until it is explicitly re-submitted.
func (s *QueueStore) MarkFailed(ctx context.Context, id string, itemErr error) error {
	message := ""
	if itemErr != nil {
		message = itemErr.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		UPDATE extraction_queue
		SET status = 'failed', attempts = attempts + 1, error = $1, updated_at = NOW()
		WHERE id = $2`,
		message, id)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("queue item", err)
	}
	return nil
}

func (s *QueueStore) setStatus(ctx context.Context, id string, status models.QueueItemStatus) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE extraction_queue
		SET status = $1, updated_at = NOW()
		WHERE id = $2`,
		status, id)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("queue item", err)
	}
	return nil
}

// Counts returns the number of items per status, used for the metrics
// poller and the status endpoint.
func (s *QueueStore) Counts(ctx context.Context) (map[models.QueueItemStatus]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM extraction_queue GROUP BY status`)
	if err != nil {
		return nil, pipeerrors.NewQueryExecutionFailedError("queue counts", err)
	}
	defer rows.Close()

	counts := make(map[models.QueueItemStatus]int)
	for rows.Next() {
		var status models.QueueItemStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, pipeerrors.NewQueryExecutionFailedError("queue counts", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
