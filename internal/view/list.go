package view

import (
	"fmt"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"

	"blog-go/internal/blog"
)

const (
	projectionTTL     = 5 * time.Minute
	projectionCleanup = 10 * time.Minute
)

// ListView is the state behind the post list: the search text, the active
// sort and the collection they apply to. Projections are memoised per
// collection revision, so mutations made on the collection directly are
// picked up as well as those made through the view.
type ListView struct {
	posts     *blog.Collection
	projector *blog.Projector
	memo      *cache.Cache
	search    string
	sort      blog.SortState
}

// NewListView creates a list over posts, starting with an empty search and
// the default sort.
func NewListView(posts *blog.Collection, projector *blog.Projector) *ListView {
	return &ListView{
		posts:     posts,
		projector: projector,
		memo:      cache.New(projectionTTL, projectionCleanup),
		sort:      blog.DefaultSortState(),
	}
}

func (v *ListView) Search() string { return v.search }

// SetSearch replaces the search text. An empty string shows every post.
func (v *ListView) SetSearch(s string) { v.search = s }

func (v *ListView) Sort() blog.SortState { return v.sort }

// SetSort replaces the sort state outright.
func (v *ListView) SetSort(s blog.SortState) { v.sort = s }

// ToggleSort applies a sort-control activation for key.
func (v *ListView) ToggleSort(key blog.SortKey) blog.SortState {
	v.sort = v.sort.Toggle(key)
	return v.sort
}

// memoKey identifies a projection. The collection revision changes on every
// mutation, so entries for an older collection are never read again.
func (v *ListView) memoKey() string {
	return fmt.Sprintf("%d|%s|%s|%s", v.posts.Revision(), v.sort.Key, v.sort.Order, v.search)
}

// Visible returns the posts matching the current search in the current
// sort order.
func (v *ListView) Visible() []blog.Post {
	key := v.memoKey()
	if cached, ok := v.memo.Get(key); ok {
		return slices.Clone(cached.([]blog.Post))
	}

	posts := v.projector.Project(v.posts.Posts(), blog.Query{Search: v.search, Sort: v.sort})
	v.memo.Set(key, posts, cache.DefaultExpiration)
	return slices.Clone(posts)
}

// Page captures everything RenderList needs.
func (v *ListView) Page() ListPage {
	return ListPage{Search: v.search, Sort: v.sort, Posts: v.Visible()}
}

// Create adds a post to the collection.
func (v *ListView) Create(d blog.Draft) (blog.Post, error) {
	p, err := v.posts.Create(d)
	if err != nil {
		return blog.Post{}, err
	}
	v.memo.Flush()
	return p, nil
}

// Delete removes the post with id once confirm approves. Unknown ids are
// reported without asking; a declined confirmation changes nothing.
func (v *ListView) Delete(id int64, confirm func(blog.Post) bool) (bool, error) {
	p, ok := v.posts.FindByID(id)
	if !ok {
		return false, nil
	}
	if !confirm(p) {
		return false, nil
	}

	removed, err := v.posts.Delete(id)
	if err != nil {
		return false, err
	}
	v.memo.Flush()
	return removed, nil
}

// Detail looks up a single post for the detail page.
func (v *ListView) Detail(id int64) Detail {
	return LookupDetail(v.posts, id)
}
