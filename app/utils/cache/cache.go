package cache

import (
	"log"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Tags used by the read paths. Mutations invalidate the tags of the
// entities they touched; public routes are invalidated through the
// "path:" namespace.
const (
	TagProducts   = "products"
	TagCategories = "categories"
	TagPosts      = "posts"
	TagPages      = "pages"
	TagMenus      = "menus"
	TagSettings   = "settings"
)

// Revalidation intervals per entity kind.
const (
	TTLProducts   = 1 * time.Hour
	TTLCategories = 6 * time.Hour
	TTLContent    = 1 * time.Hour
	TTLMenus      = 12 * time.Hour
	TTLSettings   = 24 * time.Hour
)

// Cache memoizes read queries with per-key TTL and tag-based
// invalidation. Invalidation is fire-and-forget: it never reports
// errors, and stale entries self-heal when their TTL lapses.
type Cache struct {
	store *gocache.Cache

	mu   sync.Mutex
	tags map[string]map[string]struct{}
}

func New() *Cache {
	return &Cache{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
		tags:  make(map[string]map[string]struct{}),
	}
}

// Memoize returns the cached value for key, or runs fn, stores the
// result for ttl and indexes it under tags. Errors from fn are never
// cached.
func Memoize[T any](c *Cache, key string, ttl time.Duration, tags []string, fn func() (T, error)) (T, error) {
	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}

	value, err := fn()
	if err != nil {
		return value, err
	}

	c.store.Set(key, value, ttl)
	c.mu.Lock()
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	c.mu.Unlock()

	return value, nil
}

// InvalidateTags drops every key indexed under the given tags.
func (c *Cache) InvalidateTags(tags ...string) {
	c.mu.Lock()
	var keys []string
	for _, tag := range tags {
		for key := range c.tags[tag] {
			keys = append(keys, key)
		}
		delete(c.tags, tag)
	}
	c.mu.Unlock()

	for _, key := range keys {
		c.store.Delete(key)
	}
	if len(keys) > 0 {
		log.Printf("cache: invalidated %d keys for tags %v", len(keys), tags)
	}
}

// InvalidatePath revalidates one public route. Path keys live in their
// own tag namespace so route and entity invalidation compose.
func (c *Cache) InvalidatePath(path string) {
	c.InvalidateTags("path:" + path)
}

// PathTag names the tag a route-scoped read should be indexed under.
func PathTag(path string) string {
	return "path:" + path
}
