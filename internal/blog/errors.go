package blog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotLoaded is returned by mutating operations on a Collection
	// whose initial load has not completed.
	ErrNotLoaded = errors.New("post collection not loaded")

	// ErrDuplicateID is returned when a generated identifier is already
	// used by a post in the collection.
	ErrDuplicateID = errors.New("post id already exists")
)

// ValidationError maps field names to the reason they were rejected.
type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s %s", f, e.Errors[f])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}
