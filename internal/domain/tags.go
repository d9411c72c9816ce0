package domain

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	tagSeparator      = " -- "
	categorySeparator = ": "
	slackMarker       = "**"
	hiddenMarker      = "***"
)

// TagSet is an unordered set of lowercase tags.
type TagSet map[string]struct{}

// NewTagSet creates a TagSet holding the given tags.
func NewTagSet(tags ...string) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		set.Add(tag)
	}
	return set
}

// Add inserts a tag into the set.
func (s TagSet) Add(tag string) {
	s[tag] = struct{}{}
}

// Has reports whether the set contains tag.
func (s TagSet) Has(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Union adds every tag of other to s.
func (s TagSet) Union(other TagSet) {
	for tag := range other {
		s.Add(tag)
	}
}

// Sorted returns the tags in alphabetical order.
func (s TagSet) Sorted() []string {
	tags := make([]string, 0, len(s))
	for tag := range s {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// SplitEntryAndTags separates an entry text from its " -- tag tag" suffix.
// A slack marker written among the tags is moved back onto the returned
// text so that "read news -- reading **" yields "read news **".
func SplitEntryAndTags(text string) (string, TagSet) {
	tags := NewTagSet()
	entry, tagText, found := strings.Cut(text, tagSeparator)
	if !found {
		return text, tags
	}
	entry = strings.TrimRightFunc(entry, unicode.IsSpace)

	marker := ""
	for _, field := range strings.Fields(tagText) {
		if isMarker(field) {
			marker = field
			continue
		}
		tags.Add(strings.ToLower(field))
	}
	if marker != "" {
		entry += " " + marker
	}
	return entry, tags
}

func isMarker(field string) bool {
	return len(field) >= len(slackMarker) && strings.Trim(field, "*") == ""
}

// SplitCategory splits "category: text" into its two halves. Entries
// without a category return an empty category and the text unchanged.
func SplitCategory(text string) (string, string) {
	category, rest, found := strings.Cut(text, categorySeparator)
	if !found {
		return "", text
	}
	return category, rest
}

// IsSlacking returns true if the entry text marks time off.
func IsSlacking(text string) bool {
	return strings.HasSuffix(text, slackMarker)
}

// IsHidden returns true if the entry text marks time off that must not
// show up in listings.
func IsHidden(text string) bool {
	return strings.HasSuffix(text, hiddenMarker)
}

// Capitalize upper-cases the first letter of text.
func Capitalize(text string) string {
	r, size := utf8.DecodeRuneInString(text)
	if r == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(r)) + text[size:]
}
