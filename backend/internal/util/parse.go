package util

import (
	"strconv"
	"strings"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return val
	}
	return defaultValue
}

// ParsePositiveInt is ParseInt that also rejects zero and negatives
func ParsePositiveInt(s string, defaultValue int) int {
	if val := ParseInt(s, defaultValue); val > 0 {
		return val
	}
	return defaultValue
}

// ParseID parses a numeric path id. ok is false for anything that is not a positive integer.
func ParseID(s string) (uint, bool) {
	val, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || val == 0 {
		return 0, false
	}
	return uint(val), true
}

// Paginate returns the [start, end) bounds of page within n items.
// Pages past the end, however large, give an empty range.
func Paginate(n, page, limit int) (int, int) {
	if n <= 0 || limit <= 0 {
		return n, n
	}
	if page < 1 {
		page = 1
	}
	pages := (n-1)/limit + 1
	if page > pages {
		return n, n
	}
	start := (page - 1) * limit
	end := min(start+limit, n)
	return start, end
}
