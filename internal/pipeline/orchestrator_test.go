package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/common/observability"
	"crew-pipeline/internal/models"
	"crew-pipeline/internal/textextract"
)

// ==========================
// Stub collaborators
// ==========================

type stubQueue struct {
	mu        sync.Mutex
	items     []models.QueueItem
	completed []string
	failed    map[string]string
}

func (s *stubQueue) PendingBatch(_ context.Context, limit int) ([]models.QueueItem, error) {
	if len(s.items) > limit {
		return s.items[:limit], nil
	}
	return s.items, nil
}

func (s *stubQueue) MarkCompleted(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, id)
	return nil
}

func (s *stubQueue) MarkFailed(_ context.Context, id string, itemErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed == nil {
		s.failed = make(map[string]string)
	}
	s.failed[id] = itemErr.Error()
	return nil
}

type stubDocuments struct {
	mu      sync.Mutex
	docs    map[string]*models.Document
	updated map[string]string
}

func (s *stubDocuments) Get(_ context.Context, id string) (*models.Document, error) {
	if doc, ok := s.docs[id]; ok {
		return doc, nil
	}
	return nil, pipeerrors.NewDocumentNotFoundError(id)
}

func (s *stubDocuments) UpdateExtractedText(_ context.Context, id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updated == nil {
		s.updated = make(map[string]string)
	}
	s.updated[id] = text
	return nil
}

type stubCandidates struct {
	mu      sync.Mutex
	applied map[string]*models.ExtractionResult
	err     error
}

func (s *stubCandidates) ApplyExtraction(_ context.Context, candidateID string, result *models.ExtractionResult) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applied == nil {
		s.applied = make(map[string]*models.ExtractionResult)
	}
	s.applied[candidateID] = result
	return nil
}

type stubBlobs struct {
	data map[string][]byte
}

func (s *stubBlobs) Get(_ context.Context, path string) ([]byte, error) {
	if data, ok := s.data[path]; ok {
		return data, nil
	}
	return nil, pipeerrors.NewBlobDownloadFailedError(path, errors.New("not found"))
}

type stubTextExtractor struct{}

func (s *stubTextExtractor) Extract(data []byte, _, _ string) (*textextract.Result, error) {
	if len(data) == 0 {
		return nil, pipeerrors.NewNoExtractableTextError("empty")
	}
	return &textextract.Result{Text: string(data)}, nil
}

type stubStructuredExtractor struct {
	err     error
	failFor map[string]bool // keyed on cv text
}

func (s *stubStructuredExtractor) Extract(_ context.Context, cvText string) (*models.ExtractionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.failFor[cvText] {
		return nil, pipeerrors.NewSchemaValidationFailedError("bad document")
	}
	return &models.ExtractionResult{
		PositionsHeld:        []models.Position{{RawTitle: "Deckhand", NormalizedTitle: "Deckhand", Category: "deck"}},
		ExtractionConfidence: 0.9,
	}, nil
}

type stubEmbedder struct {
	err   error
	calls int
	mu    sync.Mutex
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

type stubIndexer struct {
	mu      sync.Mutex
	indexed map[string][]float32
	err     error
}

func (s *stubIndexer) Index(_ context.Context, candidateID string, _ *models.ExtractionResult, embedding []float32) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexed == nil {
		s.indexed = make(map[string][]float32)
	}
	s.indexed[candidateID] = embedding
	return nil
}

// ==========================
// Fixtures
// ==========================

func textPtr(s string) *string { return &s }

type fixture struct {
	queue      *stubQueue
	documents  *stubDocuments
	candidates *stubCandidates
	blobs      *stubBlobs
	extractor  *stubStructuredExtractor
	embedder   *stubEmbedder
	indexer    *stubIndexer
	orch       *Orchestrator
}

func newFixture(t *testing.T, items []models.QueueItem, docs map[string]*models.Document) *fixture {
	t.Helper()
	f := &fixture{
		queue:      &stubQueue{items: items},
		documents:  &stubDocuments{docs: docs},
		candidates: &stubCandidates{},
		blobs:      &stubBlobs{data: map[string][]byte{}},
		extractor:  &stubStructuredExtractor{},
		embedder:   &stubEmbedder{},
		indexer:    &stubIndexer{},
	}
	f.orch = NewOrchestrator(
		Config{BatchSize: 200, Concurrency: 5, ItemTimeout: time.Minute},
		f.queue, f.documents, f.candidates, f.blobs,
		&stubTextExtractor{}, f.extractor, f.embedder, f.indexer,
		&observability.Observability{},
		logger.NewTestLogger(t),
	)
	return f
}

func docWithText(id, candidateID, text string) *models.Document {
	return &models.Document{
		ID:            id,
		EntityType:    models.EntityCandidate,
		EntityID:      candidateID,
		Type:          "cv",
		Name:          "cv.pdf",
		MimeType:      "application/pdf",
		ExtractedText: textPtr(text),
	}
}

// ==========================
// Tests
// ==========================

func TestProcessBatch_CompletesItems(t *testing.T) {
	items := []models.QueueItem{
		{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"},
		{ID: "item-2", CandidateID: "cand-2", DocumentID: "doc-2"},
	}
	docs := map[string]*models.Document{
		"doc-1": docWithText("doc-1", "cand-1", "Deckhand with STCW"),
		"doc-2": docWithText("doc-2", "cand-2", "Bosun, five seasons"),
	}
	f := newFixture(t, items, docs)

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchResult{Claimed: 2, Completed: 2, Failed: 0}, result)
	assert.ElementsMatch(t, []string{"item-1", "item-2"}, f.queue.completed)
	assert.Len(t, f.candidates.applied, 2)
	assert.Len(t, f.indexer.indexed, 2)
}

func TestProcessBatch_EmptyQueue(t *testing.T) {
	f := newFixture(t, nil, nil)

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BatchResult{}, result)
}

func TestProcessBatch_PerItemIsolation(t *testing.T) {
	items := []models.QueueItem{
		{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"},
		{ID: "item-2", CandidateID: "cand-2", DocumentID: "doc-missing"},
		{ID: "item-3", CandidateID: "cand-3", DocumentID: "doc-3"},
	}
	docs := map[string]*models.Document{
		"doc-1": docWithText("doc-1", "cand-1", "Deckhand"),
		"doc-3": docWithText("doc-3", "cand-3", "Chef"),
	}
	f := newFixture(t, items, docs)

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Completed)
	assert.Equal(t, 1, result.Failed)
	assert.ElementsMatch(t, []string{"item-1", "item-3"}, f.queue.completed)
	assert.Contains(t, f.queue.failed["item-2"], "DOCUMENT_NOT_FOUND")
}

func TestProcessBatch_ExtractionFailureStoresError(t *testing.T) {
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	docs := map[string]*models.Document{"doc-1": docWithText("doc-1", "cand-1", "garbled")}
	f := newFixture(t, items, docs)
	f.extractor.failFor = map[string]bool{"garbled": true}

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, f.queue.failed["item-1"], "SCHEMA_VALIDATION_FAILED")
	// A failed extraction never touches the candidate's stored profile.
	assert.Empty(t, f.candidates.applied)
}

func TestProcessBatch_TextExtractionRunsWhenMissing(t *testing.T) {
	doc := &models.Document{
		ID:         "doc-1",
		EntityType: models.EntityCandidate,
		EntityID:   "cand-1",
		Type:       "cv",
		Name:       "cv.pdf",
		MimeType:   "application/pdf",
		FilePath:   "cand-1/cv/cv.pdf",
	}
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	f := newFixture(t, items, map[string]*models.Document{"doc-1": doc})
	f.blobs.data["cand-1/cv/cv.pdf"] = []byte("Deckhand CV body")

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, "Deckhand CV body", f.documents.updated["doc-1"])
}

func TestProcessBatch_StoredTextSkipsBlobFetch(t *testing.T) {
	// The blob is absent but the item still completes because the extracted
	// text is already stored on the document.
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	docs := map[string]*models.Document{"doc-1": docWithText("doc-1", "cand-1", "Stewardess CV")}
	f := newFixture(t, items, docs)

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.Empty(t, f.documents.updated)
}

func TestProcessBatch_EmbeddingFailureIsNonFatal(t *testing.T) {
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	docs := map[string]*models.Document{"doc-1": docWithText("doc-1", "cand-1", "Deckhand")}
	f := newFixture(t, items, docs)
	f.embedder.err = pipeerrors.NewEmbeddingFailedError(errors.New("quota"))

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.Empty(t, f.queue.failed)
	// Indexing still ran, just without an embedding.
	assert.Contains(t, f.indexer.indexed, "cand-1")
	assert.Nil(t, f.indexer.indexed["cand-1"])
}

func TestProcessBatch_IndexFailureIsNonFatal(t *testing.T) {
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	docs := map[string]*models.Document{"doc-1": docWithText("doc-1", "cand-1", "Deckhand")}
	f := newFixture(t, items, docs)
	f.indexer.err = pipeerrors.NewSearchIndexFailedError(errors.New("cluster red"))

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.ElementsMatch(t, []string{"item-1"}, f.queue.completed)
}

func TestProcessBatch_PersistenceFailureFailsItem(t *testing.T) {
	items := []models.QueueItem{{ID: "item-1", CandidateID: "cand-1", DocumentID: "doc-1"}}
	docs := map[string]*models.Document{"doc-1": docWithText("doc-1", "cand-1", "Deckhand")}
	f := newFixture(t, items, docs)
	f.candidates.err = pipeerrors.NewPersistenceFailedError("candidate", errors.New("down"))

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, f.queue.failed["item-1"], "PERSISTENCE_FAILED")
	// Best-effort stages never run for a failed item.
	assert.Zero(t, f.embedder.calls)
}

func TestProcessBatch_RespectsBatchSize(t *testing.T) {
	var items []models.QueueItem
	docs := make(map[string]*models.Document)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		items = append(items, models.QueueItem{ID: "item-" + id, CandidateID: "cand-" + id, DocumentID: "doc-" + id})
		docs["doc-"+id] = docWithText("doc-"+id, "cand-"+id, "Deckhand")
	}
	f := newFixture(t, items, docs)
	f.orch.config.BatchSize = 3

	result, err := f.orch.ProcessBatch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Claimed)
	assert.Equal(t, 3, result.Completed)
}
