package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/unigrade/backend/internal/app/models"
)

// GPACache stores computed GPA breakdowns in Redis so repeated GPA reads
// don't rescan the ledger. Entries are invalidated by the enrollment
// ledger's post-commit hook on every mutation; the TTL is only a backstop.
type GPACache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGPACache creates a new GPA breakdown cache
func NewGPACache(client *redis.Client, ttl time.Duration) *GPACache {
	return &GPACache{
		client: client,
		ttl:    ttl,
	}
}

func gpaKey(studentID uuid.UUID) string {
	return fmt.Sprintf("gpa:breakdown:%s", studentID)
}

// Get returns the cached breakdown, or (nil, nil) on a miss.
func (c *GPACache) Get(ctx context.Context, studentID uuid.UUID) (*models.GPABreakdown, error) {
	data, err := c.client.Get(ctx, gpaKey(studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading gpa cache: %w", err)
	}

	var breakdown models.GPABreakdown
	if err := json.Unmarshal(data, &breakdown); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, nil
	}

	return &breakdown, nil
}

// Set stores a breakdown under the student's key.
func (c *GPACache) Set(ctx context.Context, studentID uuid.UUID, breakdown *models.GPABreakdown) error {
	data, err := json.Marshal(breakdown)
	if err != nil {
		return fmt.Errorf("encoding gpa cache entry: %w", err)
	}

	if err := c.client.Set(ctx, gpaKey(studentID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("writing gpa cache: %w", err)
	}

	return nil
}

// Invalidate drops the student's cached breakdown.
func (c *GPACache) Invalidate(ctx context.Context, studentID uuid.UUID) error {
	if err := c.client.Del(ctx, gpaKey(studentID)).Err(); err != nil {
		return fmt.Errorf("invalidating gpa cache: %w", err)
	}
	return nil
}
