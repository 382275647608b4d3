package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mentorlab/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisQuizCache implements domain.QuizCache on top of Redis. Quiz payloads
// are immutable once created, so a plain TTL is enough; there is no
// invalidation path.
type RedisQuizCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisQuizCache creates a new instance of RedisQuizCache
func NewRedisQuizCache(client *redis.Client, ttl time.Duration) *RedisQuizCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisQuizCache{client: client, ttl: ttl}
}

// GetQuiz implements domain.QuizCache; a miss returns (nil, nil).
func (c *RedisQuizCache) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	payload, err := c.client.Get(ctx, QuizKey(quizID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read quiz %s from cache: %w", quizID, err)
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(payload), &quiz); err != nil {
		return nil, fmt.Errorf("failed to decode cached quiz %s: %w", quizID, err)
	}
	return &quiz, nil
}

// SetQuiz implements domain.QuizCache
func (c *RedisQuizCache) SetQuiz(ctx context.Context, quiz *domain.Quiz) error {
	payload, err := json.Marshal(quiz)
	if err != nil {
		return fmt.Errorf("failed to encode quiz %s for cache: %w", quiz.ID, err)
	}
	if err := c.client.Set(ctx, QuizKey(quiz.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write quiz %s to cache: %w", quiz.ID, err)
	}
	return nil
}

var _ domain.QuizCache = (*RedisQuizCache)(nil)
