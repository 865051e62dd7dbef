package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	progressCacheKeyPrefix = "progress:summary:"
	progressCacheTTL       = 10 * time.Minute
)

// ProgressSummary is the cached adherence aggregate for one patient over a
// period.
type ProgressSummary struct {
	PatientID         string    `json:"patient_id"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	ScheduledMeals    int       `json:"scheduled_meals"`
	ValidatedMeals    int       `json:"validated_meals"`
	ApprovedMeals     int       `json:"approved_meals"`
	AdherencePercent  float64   `json:"adherence_percent"`
	AvgConfidence     float64   `json:"avg_confidence"`
	AvgNutritionMatch float64   `json:"avg_nutrition_match"`
	ComputedAt        time.Time `json:"computed_at"`
}

// ProgressCache caches per-patient adherence summaries. Entries are keyed by
// patient id so a new validation can invalidate exactly one patient.
type ProgressCache interface {
	Get(ctx context.Context, patientID, from, to string) (*ProgressSummary, error)
	Set(ctx context.Context, summary *ProgressSummary) error
	Invalidate(ctx context.Context, patientID string) error
}

type redisProgressCache struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisProgressCache(client *redis.Client, log *logrus.Logger) ProgressCache {
	return &redisProgressCache{client: client, log: log}
}

func progressCacheKey(patientID, from, to string) string {
	return fmt.Sprintf("%s%s:%s:%s", progressCacheKeyPrefix, patientID, from, to)
}

func (c *redisProgressCache) Get(ctx context.Context, patientID, from, to string) (*ProgressSummary, error) {
	raw, err := c.client.Get(ctx, progressCacheKey(patientID, from, to)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summary ProgressSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		// A broken cache entry is treated as a miss.
		c.log.Warnf("Failed to decode cached progress summary: %+v", err)
		return nil, nil
	}
	return &summary, nil
}

func (c *redisProgressCache) Set(ctx context.Context, summary *ProgressSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, progressCacheKey(summary.PatientID, summary.From, summary.To), raw, progressCacheTTL).Err()
}

func (c *redisProgressCache) Invalidate(ctx context.Context, patientID string) error {
	pattern := progressCacheKeyPrefix + patientID + ":*"
	keys, err := c.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
	}
	return nil
}
