package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/finadvisor/finadvisor/internal/cache"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store persists the ordered category list of each owner. Load reports
// found=false for owners that have never been saved.
type Store interface {
	Load(ctx context.Context, owner string) (categories []domain.BudgetCategory, found bool, err error)
	Save(ctx context.Context, owner string, categories []domain.BudgetCategory) error
}

// MemoryStore keeps categories in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	owners map[string][]domain.BudgetCategory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{owners: make(map[string][]domain.BudgetCategory)}
}

func (m *MemoryStore) Load(_ context.Context, owner string) ([]domain.BudgetCategory, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cats, ok := m.owners[owner]
	if !ok {
		return nil, false, nil
	}
	return append([]domain.BudgetCategory(nil), cats...), true, nil
}

func (m *MemoryStore) Save(_ context.Context, owner string, categories []domain.BudgetCategory) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[owner] = append([]domain.BudgetCategory{}, categories...)
	return nil
}

// RedisStore keeps each owner's categories as one JSON document.
type RedisStore struct {
	client cache.RedisClient
	prefix string
}

func NewRedisStore(client cache.RedisClient) *RedisStore {
	return &RedisStore{client: client, prefix: "finadvisor:budget:"}
}

func (r *RedisStore) key(owner string) string { return r.prefix + owner }

func (r *RedisStore) Load(ctx context.Context, owner string) ([]domain.BudgetCategory, bool, error) {
	data, err := r.client.Get(ctx, r.key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load budget for %s: %w", owner, err)
	}
	var cats []domain.BudgetCategory
	if err := json.Unmarshal(data, &cats); err != nil {
		return nil, false, fmt.Errorf("decode budget for %s: %w", owner, err)
	}
	return cats, true, nil
}

func (r *RedisStore) Save(ctx context.Context, owner string, categories []domain.BudgetCategory) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode budget for %s: %w", owner, err)
	}
	if err := r.client.Set(ctx, r.key(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("save budget for %s: %w", owner, err)
	}
	return nil
}
