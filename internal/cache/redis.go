package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/shop-api/internal/models"
)

const generationKey = "catalog:gen"

// Redis stores catalog reads under a generation prefix. Invalidate bumps
// the generation so every older key becomes unreachable and expires on
// its own TTL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

var _ Catalog = (*Redis)(nil)

func NewRedis(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *Redis {
	return &Redis{client: client, ttl: ttl, log: log}
}

// Dial parses a redis:// URL and checks the server answers.
func Dial(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *Redis) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func keyAt(gen int64, kind, name string) string {
	return fmt.Sprintf("catalog:v%d:%s:%s", gen, kind, name)
}

func (c *Redis) Snapshot(ctx context.Context) (int64, bool) {
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.WithError(err).Warn("catalog cache: read generation")
		return 0, false
	}
	return gen, true
}

func (c *Redis) get(ctx context.Context, kind, name string, dst any) bool {
	gen, ok := c.Snapshot(ctx)
	if !ok {
		return false
	}
	key := keyAt(gen, kind, name)

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache: get")
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache: decode")
		return false
	}
	return true
}

func (c *Redis) set(ctx context.Context, gen int64, kind, name string, v any) {
	key := keyAt(gen, kind, name)

	raw, err := json.Marshal(v)
	if err != nil {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache: encode")
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.WithError(err).WithField("key", key).Warn("catalog cache: set")
	}
}

func (c *Redis) GetList(ctx context.Context, category string) ([]models.Item, bool) {
	var items []models.Item
	if !c.get(ctx, "list", category, &items) {
		return nil, false
	}
	return items, true
}

func (c *Redis) SetList(ctx context.Context, gen int64, category string, items []models.Item) {
	if items == nil {
		items = []models.Item{}
	}
	c.set(ctx, gen, "list", category, items)
}

func (c *Redis) GetItem(ctx context.Context, id string) (*models.Item, bool) {
	var it models.Item
	if !c.get(ctx, "item", id, &it) {
		return nil, false
	}
	return &it, true
}

func (c *Redis) SetItem(ctx context.Context, gen int64, it *models.Item) {
	c.set(ctx, gen, "item", it.ID, it)
}

func (c *Redis) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.log.WithError(err).Warn("catalog cache: invalidate")
	}
}
