package blog

import "strings"

// DefaultReadTime is applied to posts created without a read time.
const DefaultReadTime = "5 min read"

// DateLayout is the ISO calendar date format used for Post.Date.
const DateLayout = "2006-01-02"

// Post is a single blog entry. Posts are never edited after creation;
// the ID is the only stable reference used for lookup and deletion.
type Post struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Content  string `json:"content,omitempty"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Category string `json:"category,omitempty"`
}

// Body returns the full content, falling back to the excerpt when the
// post has no content.
func (p Post) Body() string {
	if p.Content != "" {
		return p.Content
	}
	return p.Excerpt
}

// Draft holds the author-supplied fields of a post that has not been
// created yet. Only Title and Excerpt are required.
type Draft struct {
	Title    string
	Excerpt  string
	Content  string
	Date     string
	ReadTime string
	Category string
}

// validate reports the missing required fields of d.
func (d Draft) validate() error {
	errs := make(map[string]string)
	if strings.TrimSpace(d.Title) == "" {
		errs["title"] = "must be provided"
	}
	if strings.TrimSpace(d.Excerpt) == "" {
		errs["excerpt"] = "must be provided"
	}
	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
