package view

import "blog-go/internal/blog"

// Detail is the state of the detail page: either a post or not found.
type Detail struct {
	Post  blog.Post
	Found bool
}

// LookupDetail finds the post with id. A missing post is a normal outcome.
func LookupDetail(posts *blog.Collection, id int64) Detail {
	p, ok := posts.FindByID(id)
	return Detail{Post: p, Found: ok}
}
