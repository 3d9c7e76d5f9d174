package group

import (
	"errors"
	"regexp"
)

var ErrInvalidSlug = errors.New("slug may contain only latin letters, numbers, underscores and hyphens")

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidateSlug проверяет, что slug можно подставить в /group/<slug>/
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}
