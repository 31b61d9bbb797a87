package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
)

// Client подмножество команд Redis, которое использует кэш
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

const (
	keyTrainers = "trainers"
	keyPackages = "packages"
)

// Cache кэш справочников студии (тренеры, пакеты) в Redis
type Cache struct {
	client Client
	prefix string
	ttl    time.Duration
}

// New создает кэш. prefix добавляется ко всем ключам.
func New(client Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// NewClient создает клиент Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: failed to connect to %s: %v", ErrCache, addr, err)
	}
	return rdb, nil
}

// GetTrainers возвращает тренеров из кэша; found=false при промахе
func (c *Cache) GetTrainers(ctx context.Context) ([]domain.Trainer, bool, error) {
	var trainers []domain.Trainer
	found, err := c.get(ctx, keyTrainers, &trainers)
	return trainers, found, err
}

// SetTrainers сохраняет тренеров
func (c *Cache) SetTrainers(ctx context.Context, trainers []domain.Trainer) error {
	return c.set(ctx, keyTrainers, trainers)
}

// GetPackages возвращает пакеты из кэша; found=false при промахе
func (c *Cache) GetPackages(ctx context.Context) ([]domain.Package, bool, error) {
	var packages []domain.Package
	found, err := c.get(ctx, keyPackages, &packages)
	return packages, found, err
}

// SetPackages сохраняет пакеты
func (c *Cache) SetPackages(ctx context.Context, packages []domain.Package) error {
	return c.set(ctx, keyPackages, packages)
}

// Invalidate удаляет все справочники из кэша
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key(keyTrainers), c.key(keyPackages)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate: %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) get(ctx context.Context, name string, dst interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("%w: get %s: %v", ErrCache, name, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, name, err)
	}

	if err := c.client.Set(ctx, c.key(name), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, name, err)
	}
	return nil
}

func (c *Cache) key(name string) string {
	return c.prefix + ":catalog:" + name
}
