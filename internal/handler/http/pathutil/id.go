package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is not an integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path segment as an int64 ID.
//
// Only the syntax is checked here. Zero and negative values are returned
// as-is so the caller can treat them as a lookup miss rather than a bad request.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ExtractID extracts and parses an integer ID from a URL path.
//
// Example:
//
//	id, err := ExtractID("/journals/123", "/journals/")
//	// Returns: 123, nil
func ExtractID(path, prefix string) (int64, error) {
	return ParseID(strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/"))
}
