// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineItemsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_items_completed_total",
			Help: "Total number of queue items completed by the extraction pipeline",
		},
		[]string{"stage"},
	)

	PipelineItemsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_items_failed_total",
			Help: "Total number of queue items failed, by stage and error code",
		},
		[]string{"stage", "error_code"},
	)

	PipelineItemDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_item_duration_seconds",
			Help: "Duration of queue item processing in seconds",
		},
		[]string{"stage"},
	)

	PipelineItemsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pipeline_items_active",
			Help: "Number of queue items currently being processed",
		},
		[]string{"stage"},
	)

	EmbeddingsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pipeline_embeddings_skipped_total",
			Help: "Total number of documents left without an embedding after a non-fatal failure",
		},
	)
)
