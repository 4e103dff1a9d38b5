package inkpress

import (
	"sync"
	"time"
)

// PostCache is an in-memory cache of published posts and taxonomy with TTL.
// It feeds the public taxonomy endpoints and the feed/sitemap renderers so
// those do not hit SQLite on every crawl.
type PostCache struct {
	mu         sync.RWMutex
	posts      []Post
	tags       []Tag
	categories []Category
	fetched    time.Time
	ttl        time.Duration
	store      *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
// Every admin write path calls this.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.categories = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	page, err := c.store.ListPublishedPosts(PostQuery{Page: 1, PageSize: 100})
	if err != nil {
		return err
	}
	posts := page.Posts
	// Pull remaining pages; the cache holds the full published set for
	// feed and sitemap generation.
	for p := 2; len(posts) < page.Total; p++ {
		next, err := c.store.ListPublishedPosts(PostQuery{Page: p, PageSize: 100})
		if err != nil {
			return err
		}
		if len(next.Posts) == 0 {
			break
		}
		posts = append(posts, next.Posts...)
	}
	tags, err := c.store.ListTags()
	if err != nil {
		return err
	}
	categories, err := c.store.ListCategories()
	if err != nil {
		return err
	}
	c.posts = posts
	c.tags = tags
	c.categories = categories
	c.fetched = time.Now()
	return nil
}

// ensureLoaded refreshes the cache if stale. It tries a read lock first;
// only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, []Tag, []Category, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags, categories := c.posts, c.tags, c.categories
		c.mu.RUnlock()
		return posts, tags, categories, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.posts, c.tags, c.categories, nil
}

// PublishedPosts returns every published post, newest first.
func (c *PostCache) PublishedPosts() ([]Post, error) {
	posts, _, _, err := c.ensureLoaded()
	return posts, err
}

// Tags returns all tags with usage counts.
func (c *PostCache) Tags() ([]Tag, error) {
	_, tags, _, err := c.ensureLoaded()
	return tags, err
}

// Categories returns all categories with post counts.
func (c *PostCache) Categories() ([]Category, error) {
	_, _, categories, err := c.ensureLoaded()
	return categories, err
}
