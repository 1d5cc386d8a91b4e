package cache

import (
	"context"
	"path"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is a map-backed stand-in for the real client.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (f *fakeRedis) Ping(_ context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (f *fakeRedis) Keys(_ context.Context, pattern string) *redis.StringSliceCmd {
	var matches []string
	for key := range f.data {
		if ok, _ := path.Match(pattern, key); ok {
			matches = append(matches, key)
		}
	}
	return redis.NewStringSliceResult(matches, nil)
}

func (f *fakeRedis) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error { return nil }

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetAndGet(t *testing.T) {
	svc := NewCacheService(newFakeRedis())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", payload{Name: "a", Count: 2}, time.Minute))

	var got payload
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "a", Count: 2}, got)
}

func TestGetMiss(t *testing.T) {
	svc := NewCacheService(newFakeRedis())

	var got payload
	err := svc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestGetOrSetPopulatesOnMiss(t *testing.T) {
	svc := NewCacheService(newFakeRedis())
	ctx := context.Background()

	calls := 0
	setter := func() (interface{}, error) {
		calls++
		return payload{Name: "fresh", Count: 1}, nil
	}

	var first payload
	require.NoError(t, svc.GetOrSet(ctx, "k", &first, time.Minute, setter))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", first.Name)

	var second payload
	require.NoError(t, svc.GetOrSet(ctx, "k", &second, time.Minute, setter))
	assert.Equal(t, 1, calls, "hit must not invoke the setter")
	assert.Equal(t, first, second)
}

func TestDeletePattern(t *testing.T) {
	fake := newFakeRedis()
	svc := NewCacheService(fake)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "events:upcoming", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "events:past", payload{}, time.Minute))
	require.NoError(t, svc.Set(ctx, "donations:stats", payload{}, time.Minute))

	require.NoError(t, svc.InvalidateEvents(ctx))

	assert.NotContains(t, fake.data, "events:upcoming")
	assert.NotContains(t, fake.data, "events:past")
	assert.Contains(t, fake.data, "donations:stats")
}

func TestInvalidateDonationStats(t *testing.T) {
	fake := newFakeRedis()
	svc := NewCacheService(fake)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "donations:stats", payload{Count: 3}, time.Minute))
	require.NoError(t, svc.InvalidateDonationStats(ctx))
	assert.NotContains(t, fake.data, "donations:stats")
}
