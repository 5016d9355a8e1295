package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rahulserver/task-management-backend/internal/core/domain"
	"github.com/rahulserver/task-management-backend/internal/core/ports"
)

// versionTTL keeps a post's version counter around well past any in-flight read.
const versionTTL = time.Hour

// storeIfCurrent writes KEYS[1] only while the version in KEYS[2] still equals
// ARGV[1]. A missing version counts as "0".
var storeIfCurrent = redis.NewScript(`
local current = redis.call("GET", KEYS[2])
if not current then
	current = "0"
end
if current ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[1], ARGV[2], "PX", ARGV[3])
return 1
`)

// PostCache wraps a PostRepository with a Redis read-through cache for single
// post lookups. Writes evict the affected key and bump its version; writes
// made inside WithinTx are evicted once the transaction has finished. A read
// only fills the cache if no eviction happened since it started, so a
// snapshot taken before a write is never stored after it.
type PostCache struct {
	ports.PostRepository
	redis *redis.Client
	ttl   time.Duration
}

var _ ports.PostRepository = (*PostCache)(nil)

func NewPostCache(base ports.PostRepository, client *redis.Client, ttl time.Duration) *PostCache {
	if base == nil {
		panic("cache.NewPostCache: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	return &PostCache{PostRepository: base, redis: client, ttl: ttl}
}

func (c *PostCache) GetPost(ctx context.Context, postID string) (domain.Post, error) {
	if post, ok := c.load(ctx, postID); ok {
		return post, nil
	}

	version, versionErr := c.version(ctx, postID)

	post, err := c.PostRepository.GetPost(ctx, postID)
	if err != nil {
		return domain.Post{}, err
	}

	if versionErr == nil {
		c.store(ctx, post, version)
	}
	return post, nil
}

func (c *PostCache) UpdatePost(ctx context.Context, post domain.Post) error {
	if err := c.PostRepository.UpdatePost(ctx, post); err != nil {
		return err
	}
	c.evict(ctx, post.ID)
	return nil
}

func (c *PostCache) DeletePost(ctx context.Context, ownerID, postID string) (bool, error) {
	deleted, err := c.PostRepository.DeletePost(ctx, ownerID, postID)
	if err != nil {
		return false, err
	}
	if deleted {
		c.evict(ctx, postID)
	}
	return deleted, nil
}

// WithinTx hands fn a repository that bypasses the cache, so locked reads
// always reach the database.
func (c *PostCache) WithinTx(ctx context.Context, fn func(repo ports.PostRepository) error) error {
	var touched []string
	err := c.PostRepository.WithinTx(ctx, func(repo ports.PostRepository) error {
		return fn(&txPostRepository{PostRepository: repo, touched: &touched})
	})
	c.evict(ctx, touched...)
	return err
}

func (c *PostCache) load(ctx context.Context, postID string) (domain.Post, bool) {
	if c.redis == nil {
		return domain.Post{}, false
	}
	data, err := c.redis.Get(ctx, postCacheKey(postID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Debug("post cache read failed", zap.String("post_id", postID), zap.Error(err))
			_ = c.redis.Del(ctx, postCacheKey(postID)).Err()
		}
		return domain.Post{}, false
	}
	var post domain.Post
	if err := json.Unmarshal(data, &post); err != nil {
		_ = c.redis.Del(ctx, postCacheKey(postID)).Err()
		return domain.Post{}, false
	}
	return post, true
}

func (c *PostCache) version(ctx context.Context, postID string) (string, error) {
	if c.redis == nil {
		return "0", nil
	}
	version, err := c.redis.Get(ctx, postVersionKey(postID)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		zap.L().Debug("post cache version read failed", zap.String("post_id", postID), zap.Error(err))
		return "", err
	}
	return version, nil
}

func (c *PostCache) store(ctx context.Context, post domain.Post, version string) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	keys := []string{postCacheKey(post.ID), postVersionKey(post.ID)}
	ttl := strconv.FormatInt(max(c.ttl.Milliseconds(), 1), 10)
	if err := storeIfCurrent.Run(ctx, c.redis, keys, version, data, ttl).Err(); err != nil {
		zap.L().Debug("post cache write failed", zap.String("post_id", post.ID), zap.Error(err))
	}
}

func (c *PostCache) evict(ctx context.Context, postIDs ...string) {
	if c.redis == nil || len(postIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		keys = append(keys, postCacheKey(id))
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keys...)
		for _, id := range postIDs {
			pipe.Incr(ctx, postVersionKey(id))
			pipe.Expire(ctx, postVersionKey(id), versionTTL)
		}
		return nil
	})
	if err != nil {
		zap.L().Warn("post cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

type txPostRepository struct {
	ports.PostRepository
	touched *[]string
}

func (r *txPostRepository) UpdatePost(ctx context.Context, post domain.Post) error {
	*r.touched = append(*r.touched, post.ID)
	return r.PostRepository.UpdatePost(ctx, post)
}

func (r *txPostRepository) DeletePost(ctx context.Context, ownerID, postID string) (bool, error) {
	*r.touched = append(*r.touched, postID)
	return r.PostRepository.DeletePost(ctx, ownerID, postID)
}

func (r *txPostRepository) WithinTx(ctx context.Context, fn func(repo ports.PostRepository) error) error {
	return fn(r)
}

func postCacheKey(postID string) string {
	return "post:" + postID
}

func postVersionKey(postID string) string {
	return "post:" + postID + ":v"
}
