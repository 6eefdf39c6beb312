// internal/keywords/indexer.go
package keywords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	pipeerrors "crew-pipeline/internal/common/errors"
	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

// candidateDoc is the search index document for one candidate.
type candidateDoc struct {
	CandidateID string    `json:"candidate_id"`
	Keywords    []string  `json:"keywords"`
	Embedding   []float32 `json:"embedding,omitempty"`
	IndexedAt   time.Time `json:"indexed_at"`
}

type Indexer struct {
	esClient *elasticsearch.Client
	index    string
	logger   logger.Logger
}

func NewIndexer(esClient *elasticsearch.Client, index string, log logger.Logger) *Indexer {
	return &Indexer{
		esClient: esClient,
		index:    index,
		logger:   log,
	}
}

// Index writes the candidate's keyword document, replacing any previous
// one. Failures surface as a search-index error the pipeline treats as
// non-fatal: the extraction record is already persisted by the time this
// runs.
func (i *Indexer) Index(ctx context.Context, candidateID string, result *models.ExtractionResult, embedding []float32) error {
	doc := candidateDoc{
		CandidateID: candidateID,
		Keywords:    Build(result),
		Embedding:   embedding,
		IndexedAt:   time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return pipeerrors.NewSearchIndexFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: candidateID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, i.esClient)
	if err != nil {
		return pipeerrors.NewSearchIndexFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return pipeerrors.NewSearchIndexFailedError(fmt.Errorf("index %s: %s", i.index, res.String()))
	}

	i.logger.Debug("candidate indexed", map[string]interface{}{
		"candidateId": candidateID,
		"keywords":    len(doc.Keywords),
		"embedding":   len(embedding) > 0,
	})

	return nil
}
