package utils

import "regexp"

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,99}$`)

// ValidateSlug reports whether s can be used as an organizer or event slug.
func ValidateSlug(s string) bool {
	return slugPattern.MatchString(s)
}
