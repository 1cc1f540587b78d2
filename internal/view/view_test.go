package view_test

import (
	"testing"

	"golang.org/x/text/language"

	"blog-go/internal/blog"
	"blog-go/internal/testutil"
	"blog-go/internal/view"
)

// newFixture returns a list over three posts with IDs 1 to 3:
// "Cooking tips", "Rust basics" and "Year in review".
func newFixture(t *testing.T) (*blog.Collection, *view.ListView) {
	t.Helper()

	c := testutil.NewTestCollection(t)
	testutil.SeedCollection(t, c,
		blog.Draft{
			Title:    "Cooking tips",
			Excerpt:  "Knife skills for weeknight dinners",
			Category: "food",
			Date:     "2024-01-01",
			ReadTime: "2 min read",
		},
		blog.Draft{
			Title:    "Rust basics",
			Excerpt:  "Ownership and borrowing",
			Content:  "Rust guarantees memory safety without a garbage collector.",
			Category: "systems",
			Date:     "2024-03-01",
			ReadTime: "10 min read",
		},
		blog.Draft{
			Title:   "Year in review",
			Excerpt: "Looking back at 2023",
			Date:    "2023-12-01",
		},
	)
	return c, view.NewListView(c, blog.NewProjector(language.English))
}

func titles(posts []blog.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}
