// internal/match/cache.go
package match

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"crew-pipeline/internal/common/logger"
	"crew-pipeline/internal/models"
)

// CachedScorer memoizes match scores in Redis keyed on the
// (candidate, job) pair. Scores are ephemeral so cache failures fall
// through to a fresh computation.
type CachedScorer struct {
	scorer *Scorer
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedScorer(scorer *Scorer, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedScorer {
	return &CachedScorer{
		scorer: scorer,
		redis:  rdb,
		ttl:    ttl,
		logger: log,
	}
}

func cacheKey(candidateID, jobID string) string {
	return "match:score:" + candidateID + ":" + jobID
}

// Score returns the cached score for the pair when present, computing and
// caching it otherwise.
func (c *CachedScorer) Score(ctx context.Context, candidate *models.CandidateProfile, job *models.JobPosting) models.MatchScore {
	key := cacheKey(candidate.ID, job.ID)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var cached models.MatchScore
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached
		}
	}

	score := c.scorer.Score(candidate, job)

	data, _ := json.Marshal(score)
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to cache match score", map[string]interface{}{
			"candidateId": candidate.ID,
			"jobId":       job.ID,
			"error":       err,
		})
	}

	return score
}

// Invalidate drops the cached score for a pair, used after a candidate's
// profile or preferences change.
func (c *CachedScorer) Invalidate(ctx context.Context, candidateID, jobID string) error {
	return c.redis.Del(ctx, cacheKey(candidateID, jobID)).Err()
}
