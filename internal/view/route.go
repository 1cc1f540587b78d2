package view

import (
	"strconv"
	"strings"
)

// PageKind identifies which page a path resolves to.
type PageKind int

const (
	PageUnknown PageKind = iota
	PageHome
	PageList
	PageDetail
)

// Route is a resolved path. ID is only meaningful for PageDetail, and
// ValidID is false when the path segment was not an integer.
type Route struct {
	Page    PageKind
	ID      int64
	ValidID bool
}

// ParseRoute maps "/" to home, "/blog" to the list and "/blog/{id}" to a
// post's detail page. Trailing slashes are ignored. A detail path whose id
// is not an integer still routes to the detail page, which then shows the
// not-found state.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	if path == "" || path == "/" {
		return Route{Page: PageHome}
	}

	rest, ok := strings.CutPrefix(path, "/blog")
	if !ok {
		return Route{Page: PageUnknown}
	}
	if rest == "" {
		return Route{Page: PageList}
	}

	seg, ok := strings.CutPrefix(rest, "/")
	if !ok || seg == "" || strings.Contains(seg, "/") {
		return Route{Page: PageUnknown}
	}

	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return Route{Page: PageDetail}
	}
	return Route{Page: PageDetail, ID: id, ValidID: true}
}

// DetailPath is the path of a post's detail page.
func DetailPath(id int64) string {
	return "/blog/" + strconv.FormatInt(id, 10)
}
