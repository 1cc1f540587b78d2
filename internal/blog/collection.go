package blog

import (
	"fmt"
	"slices"
	"strings"
)

// Collection owns the authoritative in-memory list of posts, newest
// created first. It starts uninitialized; Load populates it from the
// PostStore exactly once, and no write reaches the store before that.
// Every successful Create or Delete writes the full collection back before
// returning.
//
// A Collection is not safe for concurrent use.
type Collection struct {
	store    PostStore
	clock    Clock
	idgen    IDGenerator
	logger   Logger
	posts    []Post
	loaded   bool
	revision uint64
}

// NewCollection creates an uninitialized Collection.
func NewCollection(store PostStore, clock Clock, idgen IDGenerator, logger Logger) *Collection {
	return &Collection{
		store:  store,
		clock:  clock,
		idgen:  idgen,
		logger: logger,
	}
}

// Load reads the stored posts into the collection. It is a no-op once the
// collection has loaded. If the store cannot be read the collection stays
// uninitialized.
func (c *Collection) Load() error {
	if c.loaded {
		return nil
	}

	posts, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("loading posts: %w", err)
	}

	c.posts = posts
	c.loaded = true
	c.logger.Info("collection loaded", "count", len(posts))
	return nil
}

// Revision increases with every successful mutation.
func (c *Collection) Revision() uint64 { return c.revision }

// Len returns the number of posts.
func (c *Collection) Len() int { return len(c.posts) }

// Posts returns a copy of the posts in stored order.
func (c *Collection) Posts() []Post {
	return slices.Clone(c.posts)
}

// Create validates d, applies defaults, prepends the new post and persists
// the collection. Invalid drafts fail with a ValidationError and leave the
// collection and the store untouched.
func (c *Collection) Create(d Draft) (Post, error) {
	if !c.loaded {
		return Post{}, ErrNotLoaded
	}
	if err := d.validate(); err != nil {
		return Post{}, err
	}

	id := c.idgen.New()
	if _, exists := c.FindByID(id); exists {
		return Post{}, fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	p := Post{
		ID:       id,
		Title:    d.Title,
		Excerpt:  d.Excerpt,
		Content:  d.Content,
		Date:     strings.TrimSpace(d.Date),
		ReadTime: strings.TrimSpace(d.ReadTime),
		Category: d.Category,
	}
	if p.Date == "" {
		p.Date = Today(c.clock)
	}
	if p.ReadTime == "" {
		p.ReadTime = DefaultReadTime
	}

	next := make([]Post, 0, len(c.posts)+1)
	next = append(next, p)
	next = append(next, c.posts...)

	if err := c.commit(next); err != nil {
		return Post{}, fmt.Errorf("creating post: %w", err)
	}

	c.logger.Info("post created", "id", p.ID, "title", p.Title)
	return p, nil
}

// Delete removes the post with the given id and persists the result. An
// unknown id leaves the posts unchanged, still writes them, and returns false.
func (c *Collection) Delete(id int64) (bool, error) {
	if !c.loaded {
		return false, ErrNotLoaded
	}

	i := slices.IndexFunc(c.posts, func(p Post) bool { return p.ID == id })
	if i < 0 {
		c.logger.Debug("delete of unknown post", "id", id)
		if err := c.store.Save(c.posts); err != nil {
			return false, fmt.Errorf("deleting post %d: %w", id, err)
		}
		return false, nil
	}

	next := slices.Delete(slices.Clone(c.posts), i, i+1)
	if err := c.commit(next); err != nil {
		return false, fmt.Errorf("deleting post %d: %w", id, err)
	}

	c.logger.Info("post deleted", "id", id)
	return true, nil
}

// FindByID returns the post with the given id. A missing post is a normal
// outcome, reported through ok.
func (c *Collection) FindByID(id int64) (Post, bool) {
	for _, p := range c.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// commit persists next and only then makes it the current collection, so
// a failed write leaves memory and storage in agreement.
func (c *Collection) commit(next []Post) error {
	if err := c.store.Save(next); err != nil {
		return err
	}
	c.posts = next
	c.revision++
	return nil
}
