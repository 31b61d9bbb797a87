package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, exp time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestTrainersRoundTripThroughRedis(t *testing.T) {
	rdb := newFakeRedis()
	cache := New(rdb, "portal", time.Minute)

	_, found, err := cache.GetTrainers(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	trainers := []domain.Trainer{{ID: 1, Name: "Anna", SessionDurationMinutes: 60}}
	require.NoError(t, cache.SetTrainers(context.Background(), trainers))
	assert.Equal(t, time.Minute, rdb.ttls["portal:catalog:trainers"])

	got, found, err := cache.GetTrainers(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, trainers, got)
}

func TestGetPackages_CorruptValue(t *testing.T) {
	rdb := newFakeRedis()
	rdb.data["portal:catalog:packages"] = "{not json"

	_, _, err := New(rdb, "portal", time.Minute).GetPackages(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGet_RedisError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.failGet = errors.New("i/o timeout")

	_, _, err := New(rdb, "portal", time.Minute).GetTrainers(context.Background())
	assert.ErrorIs(t, err, ErrCache)
}

func TestInvalidate(t *testing.T) {
	rdb := newFakeRedis()
	cache := New(rdb, "portal", time.Minute)
	require.NoError(t, cache.SetPackages(context.Background(), []domain.Package{{ID: 1}}))

	require.NoError(t, cache.Invalidate(context.Background()))

	_, found, err := cache.GetPackages(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}
