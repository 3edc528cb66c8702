package ocean

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"sort"
	"strings"
)

// Static errors shared by the desired-state specs. Setters validate
// immediately; a spec never holds invalid data.
var (
	ErrInvalidName  = errors.New("name must be 1-63 characters of lowercase letters, digits, and hyphens, starting and ending alphanumeric")
	ErrInvalidSlug  = errors.New("slug must be non-blank and free of whitespace")
	ErrInvalidTag   = errors.New("tag must be non-blank letters, digits, colons, hyphens, or underscores")
	ErrInvalidCIDR  = errors.New("invalid CIDR notation")
	ErrInvalidCount = errors.New("count must be positive")
)

var (
	namePattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)
	tagPattern  = regexp.MustCompile(`^[A-Za-z0-9:_-]+$`)
)

func validateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}

	return nil
}

func validateSlug(kind, slug string) error {
	if slug == "" || strings.TrimSpace(slug) != slug {
		return fmt.Errorf("%s %q: %w", kind, slug, ErrInvalidSlug)
	}

	return nil
}

func validateTags(tags []string) error {
	for _, tag := range tags {
		if !tagPattern.MatchString(tag) {
			return fmt.Errorf("%q: %w", tag, ErrInvalidTag)
		}
	}

	return nil
}

func validateCIDR(cidr string) error {
	if _, _, err := net.ParseCIDR(cidr); err != nil {
		return fmt.Errorf("%q: %w", cidr, ErrInvalidCIDR)
	}

	return nil
}

// tagsEqual compares two tag lists as sets.
func tagsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	sortedA := append([]string(nil), a...)
	sortedB := append([]string(nil), b...)
	sort.Strings(sortedA)
	sort.Strings(sortedB)

	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}

	return true
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	return append([]string(nil), tags...)
}

// labelsEqual compares two label maps key by key.
func labelsEqual(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}

	for key, value := range a {
		if b[key] != value {
			return false
		}
	}

	return true
}
