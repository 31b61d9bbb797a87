package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/logger"
)

type mockStudioClient struct {
	mock.Mock
}

func (m *mockStudioClient) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trainer), args.Error(1)
}

func (m *mockStudioClient) ListPackages(ctx context.Context) ([]domain.Package, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Package), args.Error(1)
}

type memoryCache struct {
	trainers []domain.Trainer
	packages []domain.Package
	readErr  error
}

func (c *memoryCache) GetTrainers(context.Context) ([]domain.Trainer, bool, error) {
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.trainers, c.trainers != nil, nil
}

func (c *memoryCache) SetTrainers(_ context.Context, trainers []domain.Trainer) error {
	c.trainers = trainers
	return nil
}

func (c *memoryCache) GetPackages(context.Context) ([]domain.Package, bool, error) {
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.packages, c.packages != nil, nil
}

func (c *memoryCache) SetPackages(_ context.Context, packages []domain.Package) error {
	c.packages = packages
	return nil
}

func TestTrainers_ReadThroughCache(t *testing.T) {
	client := new(mockStudioClient)
	cache := &memoryCache{}
	trainers := []domain.Trainer{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Boris"}}
	client.On("ListTrainers", mock.Anything).Return(trainers, nil).Once()

	svc := NewService(client, cache, logger.NewNop())

	first, degraded := svc.Trainers(context.Background())
	assert.False(t, degraded)
	assert.Equal(t, trainers, first)

	second, degraded := svc.Trainers(context.Background())
	assert.False(t, degraded)
	assert.Equal(t, trainers, second)

	client.AssertNumberOfCalls(t, "ListTrainers", 1)
}

func TestTrainers_CacheErrorFallsBackToBackend(t *testing.T) {
	client := new(mockStudioClient)
	cache := &memoryCache{readErr: errors.New("connection refused")}
	client.On("ListTrainers", mock.Anything).Return([]domain.Trainer{{ID: 1}}, nil)

	got, degraded := NewService(client, cache, logger.NewNop()).Trainers(context.Background())

	assert.False(t, degraded)
	assert.Len(t, got, 1)
}

func TestTrainers_FetchFailureDegradesToEmpty(t *testing.T) {
	client := new(mockStudioClient)
	client.On("ListTrainers", mock.Anything).Return(nil, errors.New("boom"))

	got, degraded := NewService(client, nil, logger.NewNop()).Trainers(context.Background())

	assert.True(t, degraded)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPackagesByCategory(t *testing.T) {
	client := new(mockStudioClient)
	client.On("ListPackages", mock.Anything).Return([]domain.Package{
		{ID: 1, Title: "Yoga 10", Category: "yoga", SessionCount: 10},
		{ID: 2, Title: "Intro", Category: "", SessionCount: 1},
		{ID: 3, Title: "Yoga 5", Category: "yoga", SessionCount: 5},
		{ID: 4, Title: "Boxing 8", Category: "boxing", SessionCount: 8},
	}, nil)

	groups, degraded := NewService(client, nil, logger.NewNop()).PackagesByCategory(context.Background())

	assert.False(t, degraded)
	if assert.Len(t, groups, 3) {
		assert.Equal(t, "boxing", groups[0].Category)
		assert.Equal(t, DefaultCategory, groups[1].Category)
		assert.Equal(t, "yoga", groups[2].Category)
		assert.Equal(t, int64(3), groups[2].Packages[0].ID)
		assert.Equal(t, int64(1), groups[2].Packages[1].ID)
	}
}

func TestPackagesByCategory_FetchFailure(t *testing.T) {
	client := new(mockStudioClient)
	client.On("ListPackages", mock.Anything).Return(nil, errors.New("boom"))

	groups, degraded := NewService(client, nil, logger.NewNop()).PackagesByCategory(context.Background())

	assert.True(t, degraded)
	assert.Empty(t, groups)
}
