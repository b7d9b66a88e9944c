// Package naming derives deterministic output file names for page pairs.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MinPadding is the smallest zero-padding width used for pair indexes
const MinPadding = 3

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases url, collapses every run of characters outside [a-z0-9]
// into a single '-' and trims leading and trailing '-'.
func Slug(url string) string {
	s := nonSlug.ReplaceAllString(strings.ToLower(url), "-")
	return strings.Trim(s, "-")
}

// FileName returns "<index zero-padded to padding>-<slug>.png"
func FileName(index int, url string, padding int) string {
	return fmt.Sprintf("%0*d-%s.png", padding, index, Slug(url))
}

// PaddingLength returns the digit width used for indexes in a run of total pairs
func PaddingLength(total int) int {
	if total <= 0 {
		return MinPadding
	}
	return max(MinPadding, len(strconv.Itoa(total)))
}
