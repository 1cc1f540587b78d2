package view

import (
	"fmt"
	"io"
	"strings"

	"blog-go/internal/blog"
)

// ListPage is the data shown on the post list.
type ListPage struct {
	Search string
	Sort   blog.SortState
	Posts  []blog.Post
}

// RenderHome writes the landing page.
func RenderHome(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Welcome to My Portfolio\n")
	b.WriteString("This is your home page placeholder.\n")
	b.WriteString("\n")
	b.WriteString("Visit My Blog (/blog)\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderList writes the post list with its search and sort controls.
func RenderList(w io.Writer, page ListPage) error {
	var b strings.Builder
	b.WriteString("← Back to Portfolio (/)\n")
	b.WriteString("\n")
	b.WriteString("My Blog\n")
	b.WriteString("Thoughts on programming, projects, and technology\n")
	b.WriteString("\n")

	search := page.Search
	if search == "" {
		search = "(none)"
	}
	fmt.Fprintf(&b, "Search: %s\n", search)
	fmt.Fprintf(&b, "Sort: %s\n", sortControls(page.Sort))

	if len(page.Posts) == 0 {
		b.WriteString("\n")
		b.WriteString("No posts found\n")
		b.WriteString("Try adding one or searching for another keyword.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, p := range page.Posts {
		b.WriteString("\n")
		if p.Category != "" {
			fmt.Fprintf(&b, "[%d] %s (%s)\n", p.ID, p.Title, p.Category)
		} else {
			fmt.Fprintf(&b, "[%d] %s\n", p.ID, p.Title)
		}
		fmt.Fprintf(&b, "    %s\n", p.Excerpt)
		fmt.Fprintf(&b, "    %s · %s\n", p.Date, p.ReadTime)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// sortControls renders every sort key, marking the active one with its
// direction: "Date ↓ | Title | Category | Read Time".
func sortControls(s blog.SortState) string {
	labels := make([]string, len(blog.SortKeys))
	for i, k := range blog.SortKeys {
		if k == s.Key {
			labels[i] = s.String()
		} else {
			labels[i] = k.Label()
		}
	}
	return strings.Join(labels, " | ")
}

// RenderDetail writes a single post, or the not-found state.
func RenderDetail(w io.Writer, d Detail) error {
	var b strings.Builder
	b.WriteString("← Back to Blog (/blog)\n")
	b.WriteString("\n")

	if !d.Found {
		b.WriteString("Post not found.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	b.WriteString(d.Post.Title + "\n")
	fmt.Fprintf(&b, "%s · %s\n", d.Post.Date, d.Post.ReadTime)
	b.WriteString("\n")
	b.WriteString(d.Post.Body() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderNotFound writes the page shown for paths that match no route.
func RenderNotFound(w io.Writer) error {
	_, err := io.WriteString(w, "Page not found.\n")
	return err
}

// Render resolves path and writes the matching page.
func Render(w io.Writer, path string, list *ListView) error {
	r := ParseRoute(path)
	switch r.Page {
	case PageHome:
		return RenderHome(w)
	case PageList:
		return RenderList(w, list.Page())
	case PageDetail:
		if !r.ValidID {
			return RenderDetail(w, Detail{})
		}
		return RenderDetail(w, list.Detail(r.ID))
	default:
		return RenderNotFound(w)
	}
}
