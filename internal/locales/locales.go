package locales

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

var (
	ErrLocaleRequired = errors.New("locales: locale code is required")
	ErrLocaleInvalid  = errors.New("locales: locale code is not a valid BCP 47 tag")
	ErrEmptySet       = errors.New("locales: at least one locale is required")
)

// Canonical parses code as a BCP 47 tag and returns it in the lower-case form
// records are stored under ("es-MX" becomes "es-mx").
func Canonical(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", ErrLocaleRequired
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrLocaleInvalid, trimmed)
	}
	return strings.ToLower(tag.String()), nil
}

// Base returns the language subtag of code ("pt-br" -> "pt"), or the
// lower-cased input when it cannot be parsed.
func Base(code string) string {
	tag, err := language.Parse(strings.TrimSpace(code))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(code))
	}
	base, _ := tag.Base()
	return base.String()
}

// Set is the ordered list of locales the CMS edits records in.
type Set struct {
	codes   []string
	tags    []language.Tag
	matcher language.Matcher
}

// NewSet canonicalises and deduplicates codes, keeping their order. The
// default locale is moved to the front when present.
func NewSet(defaultLocale string, codes []string) (*Set, error) {
	def, err := Canonical(defaultLocale)
	if err != nil {
		return nil, err
	}

	set := &Set{}
	for _, code := range append([]string{def}, codes...) {
		canonical, err := Canonical(code)
		if err != nil {
			return nil, err
		}
		if slices.Contains(set.codes, canonical) {
			continue
		}
		set.codes = append(set.codes, canonical)
		set.tags = append(set.tags, language.Make(canonical))
	}
	if len(set.codes) == 0 {
		return nil, ErrEmptySet
	}
	set.matcher = language.NewMatcher(set.tags)
	return set, nil
}

// MustSet panics when NewSet fails. Intended for static locale lists.
func MustSet(defaultLocale string, codes ...string) *Set {
	set, err := NewSet(defaultLocale, codes)
	if err != nil {
		panic(err)
	}
	return set
}

func (s *Set) Codes() []string {
	return slices.Clone(s.codes)
}

func (s *Set) Default() string {
	return s.codes[0]
}

func (s *Set) Contains(code string) bool {
	canonical, err := Canonical(code)
	if err != nil {
		return false
	}
	return slices.Contains(s.codes, canonical)
}

// Match returns the configured locale that best serves code, so a request
// for "es-mx" is answered by "es" when only the base language is configured.
func (s *Set) Match(code string) (string, bool) {
	canonical, err := Canonical(code)
	if err != nil {
		return "", false
	}
	if slices.Contains(s.codes, canonical) {
		return canonical, true
	}
	_, index, confidence := s.matcher.Match(language.Make(canonical))
	if confidence == language.No || index < 0 || index >= len(s.codes) {
		return "", false
	}
	return s.codes[index], true
}
