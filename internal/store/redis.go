package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/resilientapp/graphq-tutor/apimodels"
)

const transcriptKeyPrefix = "transcript:"

// RedisStore persists transcripts in Redis, one serialized entry per
// session. Timestamps survive the JSON round-trip as RFC 3339 strings.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, msg apimodels.ConversationMessage) error {
	messages, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	messages = append(messages, msg)

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := s.client.Set(ctx, transcriptKey(sessionID), data, 0).Err(); err != nil {
		return fmt.Errorf("persist transcript: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) ([]apimodels.ConversationMessage, error) {
	data, err := s.client.Get(ctx, transcriptKey(sessionID)).Bytes()
	if err == redis.Nil {
		return []apimodels.ConversationMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	var messages []apimodels.ConversationMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		// Schema drift or corruption. The blob is untrusted external input;
		// start the transcript over instead of failing the session.
		return []apimodels.ConversationMessage{}, nil
	}
	return messages, nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, transcriptKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear transcript: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
