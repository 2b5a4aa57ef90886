package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"parley/internal/config"
	"parley/internal/model"
)

// ErrMiss 缓存未命中
var ErrMiss = errors.New("cache miss")

// 常用 key 模式
const (
	ConversationCacheKeyPrefix = "conv:"
	ConversationCacheTTL       = 30 * time.Minute
	ConversationTombstoneTTL   = time.Minute
)

const maxWatchAttempts = 3

// ConversationCacheKey 生成对话缓存 key
func ConversationCacheKey(id string) string {
	return ConversationCacheKeyPrefix + id
}

// RedisCache Redis 缓存封装
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 缓存客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisCache{client: client}, nil
}

// Set 设置缓存
func (c *RedisCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, expiration).Err()
}

// Get 获取缓存，未命中返回 ErrMiss
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

// Ping 检查连接
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// ConversationCache 对话读缓存
// 写入使用 WATCH 事务，已缓存的版本更新或对话刚被删除时放弃写入
type ConversationCache struct {
	cache        *RedisCache
	ttl          time.Duration
	tombstoneTTL time.Duration
}

// NewConversationCache 创建对话缓存
func NewConversationCache(c *RedisCache) *ConversationCache {
	return &ConversationCache{
		cache:        c,
		ttl:          ConversationCacheTTL,
		tombstoneTTL: ConversationTombstoneTTL,
	}
}

// Get 读取对话
func (c *ConversationCache) Get(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var conv model.Conversation
	if err := c.cache.Get(ctx, ConversationCacheKey(conversationID), &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// Set 写入对话，仅当缓存中没有更新的版本时生效
func (c *ConversationCache) Set(ctx context.Context, conv *model.Conversation) error {
	key := ConversationCacheKey(conv.ConversationID)
	tombstone := conversationTombstoneKey(conv.ConversationID)

	data, err := json.Marshal(conv)
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		deleted, err := tx.Exists(ctx, tombstone).Result()
		if err != nil {
			return err
		}
		if deleted > 0 {
			return nil
		}

		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
		case err != nil:
			return err
		default:
			var cached model.Conversation
			if json.Unmarshal(raw, &cached) == nil && newerThan(&cached, conv) {
				return nil
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, c.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxWatchAttempts; attempt++ {
		err = c.cache.client.Watch(ctx, txf, key, tombstone)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}

// Invalidate 删除对话缓存并留下短期墓碑，墓碑期内的回填被忽略
func (c *ConversationCache) Invalidate(ctx context.Context, conversationID string) error {
	_, err := c.cache.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, conversationTombstoneKey(conversationID), 1, c.tombstoneTTL)
		pipe.Del(ctx, ConversationCacheKey(conversationID))
		return nil
	})
	return err
}

func conversationTombstoneKey(id string) string {
	return ConversationCacheKey(id) + ":deleted"
}

// newerThan a 是否比 b 新：updated_at 更晚，相同时消息更多
func newerThan(a, b *model.Conversation) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return len(a.Messages) > len(b.Messages)
}
