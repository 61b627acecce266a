package questionbank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/simulado/internal/exam"
)

// Cache stores generated banks by request key.
type Cache interface {
	Get(ctx context.Context, key string) ([]exam.Question, bool, error)
	Set(ctx context.Context, key string, questions []exam.Question) error
}

// CacheKey normalizes a config so that subject order does not matter.
func CacheKey(cfg exam.QuizConfig) string {
	slugs := make([]string, len(cfg.Subjects))
	for i, s := range cfg.Subjects {
		slugs[i] = s.Slug()
	}
	slices.Sort(slugs)
	return fmt.Sprintf("%s:%d", strings.Join(slugs, ","), cfg.QuestionCount)
}

// CachedProvider serves banks from a Cache and falls through to the inner
// provider on a miss. Cache errors and cached banks that fail validation
// are logged and treated as misses.
type CachedProvider struct {
	inner      Provider
	cache      Cache
	validators []Validator
}

// NewCachedProvider wraps inner with cache.
func NewCachedProvider(inner Provider, cache Cache) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		cache: cache,
		validators: []Validator{
			&CountValidator{},
			&StructuralValidator{},
			&SubjectValidator{},
		},
	}
}

func (p *CachedProvider) Generate(ctx context.Context, cfg exam.QuizConfig) ([]exam.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := CacheKey(cfg)

	qs, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: bank cache get %s: %v\n", key, err)
	}
	if ok {
		qs = renumber(qs)
		verr := runValidators(p.validators, qs, cfg)
		if verr == nil {
			return qs, nil
		}
		fmt.Fprintf(os.Stderr, "warning: discarding cached bank %s: %v\n", key, verr)
	}

	qs, err = p.inner.Generate(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Set(ctx, key, qs); err != nil {
		fmt.Fprintf(os.Stderr, "warning: bank cache set %s: %v\n", key, err)
	}
	return qs, nil
}

// RedisCache implements Cache on Redis with a fixed TTL.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// DefaultCachePrefix namespaces bank keys in a shared Redis.
const DefaultCachePrefix = "simulado:bank:"

// NewRedisCache creates a RedisCache. A zero ttl keeps entries forever.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: DefaultCachePrefix, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]exam.Question, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, false, fmt.Errorf("decode cached bank: %w", err)
	}
	return f.Questions, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, questions []exam.Question) error {
	data, err := json.Marshal(bankFile{Questions: questions})
	if err != nil {
		return fmt.Errorf("encode bank: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}
