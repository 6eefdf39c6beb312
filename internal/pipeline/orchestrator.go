// Package pipeline drives extraction queue items through the full
// document pipeline: blob fetch, text extraction, structured extraction,
// persistence, then best-effort embedding and search indexing. Items in a
// batch run concurrently under a semaphore; each item fails on its own
// without touching the rest of the batch.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/common/metrics"
	"crew-pipeline/internal/common/observability"
	"crew-pipeline/internal/models"
	"crew-pipeline/internal/textextract"
)

// Store and collaborator contracts, implemented by internal/storage,
// internal/common/aws, internal/textextract, internal/extraction,
// internal/genai and internal/keywords. Narrow interfaces keep the
// orchestrator testable without a database.
type (
	QueueStore interface {
		PendingBatch(ctx context.Context, limit int) ([]models.QueueItem, error)
		MarkCompleted(ctx context.Context, id string) error
		MarkFailed(ctx context.Context, id string, itemErr error) error
	}

	DocumentStore interface {
		Get(ctx context.Context, id string) (*models.Document, error)
		UpdateExtractedText(ctx context.Context, id, text string) error
	}

	CandidateStore interface {
		ApplyExtraction(ctx context.Context, candidateID string, result *models.ExtractionResult) error
	}

	BlobStore interface {
		Get(ctx context.Context, path string) ([]byte, error)
	}

	TextExtractor interface {
		Extract(data []byte, mimeType, filename string) (*textextract.Result, error)
	}

	StructuredExtractor interface {
		Extract(ctx context.Context, cvText string) (*models.ExtractionResult, error)
	}

	Embedder interface {
		Embed(ctx context.Context, text string) ([]float32, error)
	}

	Indexer interface {
		Index(ctx context.Context, candidateID string, result *models.ExtractionResult, embedding []float32) error
	}
)

type Config struct {
	BatchSize   int
	Concurrency int
	ItemTimeout time.Duration
}

type Orchestrator struct {
	config        Config
	queue         QueueStore
	documents     DocumentStore
	candidates    CandidateStore
	blobs         BlobStore
	textExtractor TextExtractor
	extractor     StructuredExtractor
	embedder      Embedder
	indexer       Indexer
	obs           *observability.Observability
	logger        logger.Logger
}

func NewOrchestrator(
	config Config,
	queue QueueStore,
	documents DocumentStore,
	candidates CandidateStore,
	blobs BlobStore,
	textExtractor TextExtractor,
	extractor StructuredExtractor,
	embedder Embedder,
	indexer Indexer,
	obs *observability.Observability,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		config:        config,
		queue:         queue,
		documents:     documents,
		candidates:    candidates,
		blobs:         blobs,
		textExtractor: textExtractor,
		extractor:     extractor,
		embedder:      embedder,
		indexer:       indexer,
		obs:           obs,
		logger:        log,
	}
}

// BatchResult summarizes one ProcessBatch run.
type BatchResult struct {
	Claimed   int
	Completed int
	Failed    int
}

// ProcessBatch claims up to BatchSize pending items and processes them with
// bounded concurrency. Item failures are recorded on the queue row and
// never abort the batch.
func (o *Orchestrator) ProcessBatch(ctx context.Context) (BatchResult, error) {
	items, err := o.queue.PendingBatch(ctx, o.config.BatchSize)
	if err != nil {
		return BatchResult{}, err
	}
	if len(items) == 0 {
		return BatchResult{}, nil
	}

	o.logger.Info("processing extraction batch", map[string]interface{}{
		"items":       len(items),
		"concurrency": o.config.Concurrency,
	})

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		result    = BatchResult{Claimed: len(items)}
		semaphore = make(chan struct{}, o.config.Concurrency)
	)

	for _, item := range items {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(item models.QueueItem) {
			defer wg.Done()
			defer func() { <-semaphore }()

			err := o.processItem(ctx, item)

			mu.Lock()
			if err != nil {
				result.Failed++
			} else {
				result.Completed++
			}
			mu.Unlock()
		}(item)
	}
	wg.Wait()

	o.logger.Info("extraction batch finished", map[string]interface{}{
		"claimed":   result.Claimed,
		"completed": result.Completed,
		"failed":    result.Failed,
	})
	return result, nil
}

// processItem runs one queue item end to end and records the outcome on
// the queue row.
func (o *Orchestrator) processItem(ctx context.Context, item models.QueueItem) error {
	log := o.logger.WithFields(map[string]interface{}{
		"queueItemId": item.ID,
		"candidateId": item.CandidateID,
		"documentId":  item.DocumentID,
	})

	itemCtx := ctx
	if o.config.ItemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, o.config.ItemTimeout)
		defer cancel()
	}

	start := time.Now()
	metrics.PipelineItemsActive.WithLabelValues("item").Inc()
	defer metrics.PipelineItemsActive.WithLabelValues("item").Dec()

	result, stage, err := o.runStages(itemCtx, item, log)
	duration := time.Since(start)
	metrics.PipelineItemDuration.WithLabelValues("item").Observe(duration.Seconds())

	if err != nil {
		metrics.PipelineItemsFailed.WithLabelValues(stage, string(pipeerrors.Normalize(err).Code)).Inc()
		o.obs.RecordItemProcessed(ctx, "failed")
		o.obs.RecordItemDuration(ctx, duration, "failed")
		log.Error("queue item failed", map[string]interface{}{
			"stage": stage,
			"error": err.Error(),
		})
		if markErr := o.queue.MarkFailed(ctx, item.ID, err); markErr != nil {
			log.Error("failed to mark queue item failed", map[string]interface{}{
				"error": markErr.Error(),
			})
		}
		return err
	}

	// Embedding and search indexing are best-effort: the extraction is
	// already persisted, so their failures never fail the item.
	o.indexBestEffort(itemCtx, item.CandidateID, result, log)

	metrics.PipelineItemsCompleted.WithLabelValues("item").Inc()
	o.obs.RecordItemProcessed(ctx, "completed")
	o.obs.RecordItemDuration(ctx, duration, "completed")

	if err := o.queue.MarkCompleted(ctx, item.ID); err != nil {
		log.Error("failed to mark queue item completed", map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}

	log.Info("queue item completed", map[string]interface{}{
		"durationMs": duration.Milliseconds(),
	})
	return nil
}

// runStages executes the fatal stages in order and names the stage that
// failed for metrics and the stored queue error.
func (o *Orchestrator) runStages(ctx context.Context, item models.QueueItem, log logger.Logger) (*models.ExtractionResult, string, error) {
	doc, err := o.documents.Get(ctx, item.DocumentID)
	if err != nil {
		return nil, "load_document", err
	}

	text, err := o.ensureText(ctx, doc, log)
	if err != nil {
		return nil, "text_extraction", err
	}

	result, err := o.extractor.Extract(ctx, text)
	if err != nil {
		return nil, "structured_extraction", err
	}

	if err := o.candidates.ApplyExtraction(ctx, item.CandidateID, result); err != nil {
		return nil, "persistence", err
	}

	return result, "", nil
}

// ensureText returns the document's extracted text, running blob download
// and text extraction when it is not already stored.
func (o *Orchestrator) ensureText(ctx context.Context, doc *models.Document, log logger.Logger) (string, error) {
	if doc.ExtractedText != nil && *doc.ExtractedText != "" {
		return *doc.ExtractedText, nil
	}

	data, err := o.blobs.Get(ctx, doc.FilePath)
	if err != nil {
		return "", err
	}

	res, err := o.textExtractor.Extract(data, doc.MimeType, doc.Name)
	if err != nil {
		return "", err
	}
	if res.LikelyScanned {
		log.Warn("document is likely scanned, extraction quality may be poor", map[string]interface{}{
			"pageCount": res.PageCount,
		})
	}

	if err := o.documents.UpdateExtractedText(ctx, doc.ID, res.Text); err != nil {
		return "", err
	}

	metrics.PipelineItemsCompleted.WithLabelValues("text_extraction").Inc()
	return res.Text, nil
}

func (o *Orchestrator) indexBestEffort(ctx context.Context, candidateID string, result *models.ExtractionResult, log logger.Logger) {
	var embedding []float32
	if o.embedder != nil {
		text := embeddingText(result)
		vec, err := o.embedder.Embed(ctx, text)
		if err != nil {
			metrics.EmbeddingsSkipped.Inc()
			log.Warn("embedding generation failed, candidate left without embedding", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			embedding = vec
		}
	}

	if o.indexer != nil {
		if err := o.indexer.Index(ctx, candidateID, result, embedding); err != nil {
			log.Warn("search indexing failed, candidate remains searchable by previous document", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// embeddingText builds the text embedded for semantic search: the primary
// position plus the flat keyword-like facts the extraction carries.
func embeddingText(result *models.ExtractionResult) string {
	var parts []string
	if p := result.PrimaryPosition(); p != nil {
		title := p.NormalizedTitle
		if title == "" {
			title = p.RawTitle
		}
		parts = append(parts, title)
	}
	for _, c := range result.Certifications {
		parts = append(parts, c.Name)
	}
	for _, l := range result.Licenses {
		parts = append(parts, l.Type)
	}
	for _, v := range result.YachtExperience {
		if v.Type != "" {
			parts = append(parts, v.Type)
		}
	}
	if result.YearsOfExperience != nil {
		parts = append(parts, fmt.Sprintf("%.0f years experience", *result.YearsOfExperience))
	}

	text := ""
	for i, p := range parts {
		if i > 0 {
			text += ". "
		}
		text += p
	}
	return text
}
