package blog

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey names the post field a projection is ordered by.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByTitle    SortKey = "title"
	SortByCategory SortKey = "category"
	SortByReadTime SortKey = "readTime"
)

// SortKeys lists every sort key in display order.
var SortKeys = []SortKey{SortByDate, SortByTitle, SortByCategory, SortByReadTime}

// ParseSortKey parses user input into a SortKey. Matching ignores case,
// and "read-time" and "read_time" are accepted for SortByReadTime.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return SortByDate, nil
	case "title":
		return SortByTitle, nil
	case "category":
		return SortByCategory, nil
	case "readtime", "read-time", "read_time":
		return SortByReadTime, nil
	default:
		return "", fmt.Errorf("unknown sort key %q: must be one of %v", s, SortKeys)
	}
}

// Label is the human-readable name of the key.
func (k SortKey) Label() string {
	switch k {
	case SortByDate:
		return "Date"
	case SortByTitle:
		return "Title"
	case SortByCategory:
		return "Category"
	case SortByReadTime:
		return "Read Time"
	default:
		return string(k)
	}
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder parses "asc"/"ascending" or "desc"/"descending".
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", fmt.Errorf("unknown sort order %q: must be asc or desc", s)
	}
}

// Reverse returns the opposite order.
func (o SortOrder) Reverse() SortOrder {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// Arrow is the indicator shown next to the active sort key.
func (o SortOrder) Arrow() string {
	if o == Descending {
		return "↓"
	}
	return "↑"
}

// DefaultOrder is the order a key starts with when it becomes active:
// newest first for dates, ascending for everything else.
func DefaultOrder(k SortKey) SortOrder {
	if k == SortByDate {
		return Descending
	}
	return Ascending
}

// SortState is the active sort key and order of a list.
type SortState struct {
	Key   SortKey
	Order SortOrder
}

// DefaultSortState is date, newest first.
func DefaultSortState() SortState {
	return SortState{Key: SortByDate, Order: Descending}
}

// Toggle applies a sort-control activation for key. Selecting the active
// key flips the order; selecting another key switches to it with that
// key's default order.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Order: s.Order.Reverse()}
	}
	return SortState{Key: key, Order: DefaultOrder(key)}
}

func (s SortState) String() string {
	return s.Key.Label() + " " + s.Order.Arrow()
}

// Query selects and orders the posts of a projection.
type Query struct {
	Search string
	Sort   SortState
}

// Projector computes the filtered, sorted view of a post collection. It
// holds no state besides the locale used for collation, and never
// modifies its input.
type Projector struct {
	tag language.Tag
}

// NewProjector creates a Projector that collates titles and categories
// for the given locale.
func NewProjector(tag language.Tag) *Projector {
	return &Projector{tag: tag}
}

// Locale returns the collation locale.
func (p *Projector) Locale() language.Tag { return p.tag }

// Project returns the posts matching q.Search, ordered by q.Sort. The sort
// is stable, so posts that compare equal keep their relative input order.
func (p *Projector) Project(posts []Post, q Query) []Post {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if matches(fold, post, needle) {
			out = append(out, post)
		}
	}

	compare := p.comparator(q.Sort.Key)
	if q.Sort.Order == Descending {
		asc := compare
		compare = func(a, b Post) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

// matches reports whether needle occurs in the title, category or excerpt
// of post, ignoring case.
func matches(fold cases.Caser, post Post, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(fold.String(post.Title), needle) {
		return true
	}
	if post.Category != "" && strings.Contains(fold.String(post.Category), needle) {
		return true
	}
	return strings.Contains(fold.String(post.Excerpt), needle)
}

// comparator returns the ascending comparison for key.
func (p *Projector) comparator(key SortKey) func(a, b Post) int {
	switch key {
	case SortByReadTime:
		return func(a, b Post) int {
			return cmp.Compare(LeadingInt(a.ReadTime), LeadingInt(b.ReadTime))
		}
	case SortByTitle:
		c := collate.New(p.tag)
		return func(a, b Post) int { return c.CompareString(a.Title, b.Title) }
	case SortByCategory:
		c := collate.New(p.tag)
		return func(a, b Post) int { return c.CompareString(a.Category, b.Category) }
	default:
		return compareDates
	}
}

// compareDates orders posts chronologically. Unparseable dates sort as the
// earliest possible value.
func compareDates(a, b Post) int {
	ta, oka := ParseDate(a.Date)
	tb, okb := ParseDate(b.Date)
	switch {
	case !oka && !okb:
		return 0
	case !oka:
		return -1
	case !okb:
		return 1
	default:
		return ta.Compare(tb)
	}
}
