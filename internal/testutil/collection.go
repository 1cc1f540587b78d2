package testutil

import (
	"testing"

	"blog-go/internal/blog"
)

// NewTestCollection returns a loaded Collection over an empty in-memory
// store, with a FixedClock and sequential IDs starting at 1.
func NewTestCollection(t *testing.T) *blog.Collection {
	t.Helper()

	store := blog.NewDurableStore(NewTestKV(), "", blog.NewNopLogger())
	c := blog.NewCollection(store, FixedClock(), NewStubIDGenerator(), blog.NewNopLogger())
	if err := c.Load(); err != nil {
		t.Fatalf("loading collection: %v", err)
	}
	return c
}

// SeedCollection creates each draft in order and fails the test on error.
// Later drafts end up first, matching Create's newest-first order.
func SeedCollection(t *testing.T, c *blog.Collection, drafts ...blog.Draft) []blog.Post {
	t.Helper()

	posts := make([]blog.Post, 0, len(drafts))
	for _, d := range drafts {
		p, err := c.Create(d)
		if err != nil {
			t.Fatalf("seeding post %q: %v", d.Title, err)
		}
		posts = append(posts, p)
	}
	return posts
}
