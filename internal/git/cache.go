package git

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CachedService wraps a Service with a short-lived cache for Head and
// Status. A burst of refresh triggers (watcher events, focus changes, the
// r key) then costs a single git status. Diffs are not cached.
type CachedService struct {
	inner Service
	cache *cache.Cache
}

var _ Service = (*CachedService)(nil)

const (
	keyHead   = "head"
	keyStatus = "status"
)

// NewCachedService caches results of inner for ttl.
func NewCachedService(inner Service, ttl time.Duration) *CachedService {
	return &CachedService{
		inner: inner,
		cache: cache.New(ttl, 2*ttl),
	}
}

// Invalidate drops every cached result. The watcher calls it before a
// refresh so the next read observes the change that fired it.
func (c *CachedService) Invalidate() { c.cache.Flush() }

type cached[T any] struct {
	val T
	err error
}

func lookup[T any](c *CachedService, key string, load func() (T, error)) (T, error) {
	if v, ok := c.cache.Get(key); ok {
		e := v.(cached[T])
		return e.val, e.err
	}
	val, err := load()
	c.cache.SetDefault(key, cached[T]{val: val, err: err})
	return val, err
}

func (c *CachedService) RepoRoot() string { return c.inner.RepoRoot() }

func (c *CachedService) GitDir() string { return c.inner.GitDir() }

func (c *CachedService) Head() (string, error) {
	return lookup(c, keyHead, c.inner.Head)
}

func (c *CachedService) Status() (*StatusResult, error) {
	return lookup(c, keyStatus, c.inner.Status)
}

func (c *CachedService) Diff(staged bool, path string) (string, error) {
	return c.inner.Diff(staged, path)
}
