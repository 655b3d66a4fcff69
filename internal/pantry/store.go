package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// maxUpdateRetries bounds optimistic-lock retries in RedisStore.Update.
const maxUpdateRetries = 5

// Store persists pantry state per user.
type Store interface {
	Load(ctx context.Context, userID string) (State, error)
	// Update loads the state, applies fn and saves the result atomically
	// with respect to other updates of the same user.
	Update(ctx context.Context, userID string, fn func(State) (State, error)) (State, error)
}

// MemoryStore keeps pantries in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	states map[string]State
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]State)}
}

func (m *MemoryStore) Load(_ context.Context, userID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.states[userID], nil
}

func (m *MemoryStore) Update(_ context.Context, userID string, fn func(State) (State, error)) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := fn(m.states[userID])
	if err != nil {
		return State{}, err
	}
	m.states[userID] = next
	return next, nil
}

// RedisStore keeps pantries in Redis as JSON with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore whose entries expire after ttl of inactivity.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) key(userID string) string {
	return "pantry:" + userID
}

func (r *RedisStore) Load(ctx context.Context, userID string) (State, error) {
	return r.get(ctx, r.client, userID)
}

func (r *RedisStore) get(ctx context.Context, c redis.Cmdable, userID string) (State, error) {
	var s State
	data, err := c.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to load pantry: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to decode pantry: %w", err)
	}
	return s, nil
}

func (r *RedisStore) Update(ctx context.Context, userID string, fn func(State) (State, error)) (State, error) {
	key := r.key(userID)
	var next State

	txf := func(tx *redis.Tx) error {
		current, err := r.get(ctx, tx, userID)
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode pantry: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return State{}, err
	}
	return State{}, fmt.Errorf("pantry update for %s: too much contention", userID)
}
