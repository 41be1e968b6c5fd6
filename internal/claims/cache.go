package claims

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"insurance-advisor/internal/common/logger"
	"insurance-advisor/internal/common/metrics"
	"insurance-advisor/internal/models"
)

// SummaryCache caches claims summaries per destination in Redis. All cache
// failures are soft: a broken cache behaves like an empty one.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewSummaryCache(client *redis.Client, ttl time.Duration, log logger.Logger) *SummaryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SummaryCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "claims-cache"}),
	}
}

func summaryKey(destination string) string {
	return fmt.Sprintf("claims:summary:%s", strings.ToLower(strings.TrimSpace(destination)))
}

// Get returns the cached summary for a destination, or nil on miss or any
// cache error.
func (c *SummaryCache) Get(ctx context.Context, destination string) *models.ClaimsSummary {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, summaryKey(destination)).Bytes()
	if err == redis.Nil {
		metrics.ClaimsCacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	if err != nil {
		metrics.ClaimsCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("claims cache read failed", map[string]interface{}{
			"destination": destination,
			"error":       err.Error(),
		})
		return nil
	}

	var summary models.ClaimsSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		metrics.ClaimsCacheHits.WithLabelValues("error").Inc()
		c.logger.Warn("claims cache entry corrupt, ignoring", map[string]interface{}{
			"destination": destination,
			"error":       err.Error(),
		})
		return nil
	}

	metrics.ClaimsCacheHits.WithLabelValues("hit").Inc()
	return &summary
}

// Set stores a summary for a destination. Write failures are logged and
// dropped.
func (c *SummaryCache) Set(ctx context.Context, summary models.ClaimsSummary) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		c.logger.Warn("claims summary marshal failed", map[string]interface{}{
			"destination": summary.Destination,
			"error":       err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, summaryKey(summary.Destination), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("claims cache write failed", map[string]interface{}{
			"destination": summary.Destination,
			"error":       err.Error(),
		})
	}
}
