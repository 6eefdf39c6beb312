// cmd/pipeline-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"crew-pipeline/internal/anonymize"
	"crew-pipeline/internal/common/aws"
	"crew-pipeline/internal/common/config"
	"crew-pipeline/internal/common/database"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/common/observability"
	"crew-pipeline/internal/extraction"
	"crew-pipeline/internal/genai"
	"crew-pipeline/internal/keywords"
	"crew-pipeline/internal/match"
	"crew-pipeline/internal/models"
	"crew-pipeline/internal/pipeline"
	"crew-pipeline/internal/storage"
	"crew-pipeline/internal/textextract"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting pipeline manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("pipeline-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init S3 blob store ---
	blobStore, err := aws.NewS3Client(ctx, cfg.Storage.S3)
	if err != nil {
		zapLog.Fatal("s3 client failed", zap.Error(err))
	}
	zapLog.Info("S3 blob store initialized", zap.String("bucket", cfg.Storage.S3.Bucket))

	// --- Init GenAI client with retry ---
	var genaiClient *genai.Client
	err = retryWithBackoff(func() error {
		var err error
		genaiClient, err = genai.NewClient(ctx, cfg.GenAI.APIKey, cfg.GenAI.ExtractionModel, cfg.GenAI.EmbeddingModel)
		return err
	}, 5, 2*time.Second, zapLog, "GenAI client initialization")

	if err != nil {
		zapLog.Fatal("genai client failed after retries", zap.Error(err))
	}
	zapLog.Info("GenAI client initialized", zap.String("model", genaiClient.ExtractionModel()))

	// --- Wire pipeline components ---
	queueStore := storage.NewQueueStore(pg.DB, log)
	documentStore := storage.NewDocumentStore(pg.DB, log)
	candidateStore := storage.NewCandidateStore(pg.DB, log)
	textExtractor := textextract.NewExtractor(log)
	structuredExtractor := extraction.NewExtractor(genaiClient, log)
	indexer := keywords.NewIndexer(esClient.Client, cfg.Database.Elasticsearch.CandidateIndex, log)

	orchestrator := pipeline.NewOrchestrator(
		pipeline.Config{
			BatchSize:   cfg.Pipeline.BatchSize,
			Concurrency: cfg.Pipeline.Concurrency,
			ItemTimeout: time.Duration(cfg.Pipeline.ItemTimeout) * time.Millisecond,
		},
		queueStore,
		documentStore,
		candidateStore,
		blobStore,
		textExtractor,
		structuredExtractor,
		genaiClient,
		indexer,
		obs,
		log,
	)

	matchScorer := match.NewCachedScorer(
		match.NewScorer(log),
		redis.Client,
		time.Duration(cfg.Pipeline.MatchScoreCacheTTL)*time.Second,
		log,
	)

	zapLog.Info("Pipeline orchestrator wired",
		zap.Int("batchSize", cfg.Pipeline.BatchSize),
		zap.Int("concurrency", cfg.Pipeline.Concurrency),
	)

	// --- Poll loop ---
	loopCtx, stopLoop := context.WithCancel(ctx)
	pollInterval := time.Duration(cfg.Pipeline.PollInterval) * time.Millisecond
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			result, err := orchestrator.ProcessBatch(loopCtx)
			if err != nil {
				zapLog.Error("batch processing failed", zap.Error(err))
			} else if result.Claimed > 0 {
				zapLog.Info("batch processed",
					zap.Int("claimed", result.Claimed),
					zap.Int("completed", result.Completed),
					zap.Int("failed", result.Failed),
				)
			}

			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/queue/status", func(w http.ResponseWriter, r *http.Request) {
			counts, err := queueStore.Counts(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(counts)
		})
		http.HandleFunc("/match/score", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			var req struct {
				CandidateID string            `json:"candidateId"`
				Job         models.JobPosting `json:"job"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
				return
			}
			candidate, err := candidateStore.Get(r.Context(), req.CandidateID)
			if err != nil {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			score := matchScorer.Score(r.Context(), candidate, &req.Job)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(score)
		})
		http.HandleFunc("/candidates/extract", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			var req struct {
				CandidateID string `json:"candidateId"`
				Force       bool   `json:"force"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			if !req.Force {
				needed, err := candidateStore.NeedsExtraction(r.Context(), req.CandidateID)
				if err != nil {
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
					return
				}
				if !needed {
					json.NewEncoder(w).Encode(map[string]interface{}{"enqueued": false, "reason": "extraction up to date"})
					return
				}
			}
			cv, err := documentStore.LatestCV(r.Context(), req.CandidateID)
			if err != nil {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			itemID, err := queueStore.Enqueue(r.Context(), req.CandidateID, cv.ID)
			if err != nil {
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"enqueued": true, "queueItemId": itemID})
		})
		http.HandleFunc("/candidates/anonymize", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			var req struct {
				CandidateID string `json:"candidateId"`
				Text        string `json:"text"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"error": "invalid request body"})
				return
			}
			candidate, err := candidateStore.Get(r.Context(), req.CandidateID)
			if err != nil {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"text": anonymize.FromProfile(candidate).Anonymize(req.Text),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping pipeline...")
	stopLoop()

	// Give in-flight items a moment to finish before connections close.
	time.Sleep(2 * time.Second)

	zapLog.Info("Pipeline manager stopped gracefully")
}
