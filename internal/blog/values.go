package blog

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseDate parses a post date. It accepts DateLayout and RFC 3339
// timestamps; ok is false for anything else, including the empty string.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{DateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LeadingInt extracts the integer at the start of s, after optional
// whitespace and sign: "10 min read" is 10, "  -3x" is -3. Strings that do
// not start with digits yield 0. Values outside the int64 range saturate.
func LeadingInt(s string) int64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		n = math.MaxInt64
	}
	if neg {
		return -n
	}
	return n
}
