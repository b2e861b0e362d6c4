package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: make(map[string]string)} }

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }
func (f *fakeRedis) Close() error                          { return nil }

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, found, err := m.Load(ctx, "asha")
	require.NoError(t, err)
	assert.False(t, found)

	cats := DefaultCategories(march15)
	require.NoError(t, m.Save(ctx, "asha", cats))
	cats[0].Name = "mutated"

	loaded, found, err := m.Load(ctx, "asha")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Food & Dining", loaded[0].Name)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client)

	_, found, err := store.Load(ctx, "asha")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, "asha", DefaultCategories(march15)))
	assert.Contains(t, client.data, "finadvisor:budget:asha")

	loaded, found, err := store.Load(ctx, "asha")
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, loaded, 4)
	assert.Equal(t, "shopping", loaded[1].Key)
	assert.True(t, loaded[1].Limit.Equal(amount(10000)))
	assert.True(t, loaded[1].StartedAt.Equal(march15))
}

func TestRedisStoreErrors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client)

	client.data["finadvisor:budget:asha"] = "{not json"
	_, _, err := store.Load(ctx, "asha")
	assert.ErrorContains(t, err, "decode budget for asha")

	client.getErr = errors.New("connection refused")
	_, _, err = store.Load(ctx, "asha")
	assert.ErrorContains(t, err, "connection refused")
}

func TestServiceOverRedisStore(t *testing.T) {
	s := NewService(NewRedisStore(newFakeRedis()))
	s.SetClock(func() time.Time { return march15 })

	_, err := s.RecordSpend(context.Background(), "asha", "food", amount(1500))
	require.NoError(t, err)
	summary, err := s.Summary(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetExceeded, StatusFor(amount(100)))
	assert.Equal(t, "66.67", summary.Categories[0].UsagePercent.StringFixed(2))
}
