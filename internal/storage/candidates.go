// internal/storage/candidates.go
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

type CandidateStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewCandidateStore(db *sql.DB, log logger.Logger) *CandidateStore {
	return &CandidateStore{db: db, logger: log}
}

// Get reads the pipeline-relevant fields of a candidate.
func (s *CandidateStore) Get(ctx context.Context, id string) (*models.CandidateProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, nationality,
		       positions, preferred_positions, preferred_regions, preferred_contract_types,
		       desired_salary_min, extraction, last_extracted_at
		FROM candidates WHERE id = $1`, id)

	var (
		c          models.CandidateProfile
		positions  []byte
		prefPos    []byte
		prefReg    []byte
		prefCon    []byte
		extraction []byte
	)
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Nationality,
		&positions, &prefPos, &prefReg, &prefCon,
		&c.DesiredSalaryMin, &extraction, &c.LastExtractedAt)
	if err == sql.ErrNoRows {
		return nil, pipeerrors.NewQueryExecutionFailedError("select candidate", err)
	}
	if err != nil {
		return nil, pipeerrors.NewQueryExecutionFailedError("select candidate", err)
	}

	// Malformed JSON columns degrade to empty lists rather than failing
	// the whole read.
	if err := json.Unmarshal(positions, &c.Positions); err != nil {
		c.Positions = nil
	}
	if err := json.Unmarshal(prefPos, &c.PreferredPositions); err != nil {
		c.PreferredPositions = nil
	}
	if err := json.Unmarshal(prefReg, &c.PreferredRegions); err != nil {
		c.PreferredRegions = nil
	}
	if err := json.Unmarshal(prefCon, &c.PreferredContractTypes); err != nil {
		c.PreferredContractTypes = nil
	}
	if len(extraction) > 0 {
		var ex models.ExtractionResult
		if err := json.Unmarshal(extraction, &ex); err == nil {
			c.Extraction = &ex
		}
	}

	return &c, nil
}

// ApplyExtraction persists a successful extraction onto the candidate.
// An extraction with no positions is rejected rather than stored: a failed
// or empty run must never overwrite previously good profile data, so
// callers report those as item failures instead.
func (s *CandidateStore) ApplyExtraction(ctx context.Context, candidateID string, result *models.ExtractionResult) error {
	if result == nil || len(result.PositionsHeld) == 0 {
		return pipeerrors.NewSchemaValidationFailedError("extraction has no positions, refusing to overwrite profile")
	}

	positions, err := json.Marshal(result.PositionsHeld)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("candidate", err)
	}
	extraction, err := json.Marshal(result)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("candidate", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE candidates
		SET positions = $1, extraction = $2, last_extracted_at = $3
		WHERE id = $4`,
		positions, extraction, time.Now().UTC(), candidateID)
	if err != nil {
		return pipeerrors.NewPersistenceFailedError("candidate", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pipeerrors.NewPersistenceFailedError("candidate", sql.ErrNoRows)
	}

	s.logger.Info("extraction applied to candidate", map[string]interface{}{
		"candidateId": candidateID,
		"positions":   len(result.PositionsHeld),
		"confidence":  result.ExtractionConfidence,
	})
	return nil
}

// NeedsExtraction reports whether the candidate's newest CV postdates the
// last extraction. A candidate with a CV and no recorded extraction always
// needs one; a candidate without a CV never does.
func (s *CandidateStore) NeedsExtraction(ctx context.Context, candidateID string) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT d.created_at, c.last_extracted_at
		FROM candidates c
		JOIN documents d ON d.entity_type = 'candidate' AND d.entity_id = c.id AND d.type = 'cv'
		WHERE c.id = $1
		ORDER BY d.created_at DESC
		LIMIT 1`, candidateID)

	var cvCreatedAt time.Time
	var lastExtractedAt *time.Time
	err := row.Scan(&cvCreatedAt, &lastExtractedAt)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, pipeerrors.NewQueryExecutionFailedError("needs extraction", err)
	}

	if lastExtractedAt == nil {
		return true, nil
	}
	return cvCreatedAt.After(*lastExtractedAt), nil
}
