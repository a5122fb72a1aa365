// derive.go holds the pure display helpers used when rendering a volunteer
// profile. They depend only on their inputs so they can be reused anywhere a
// profile is shown (CLI output, templates, tests).
package profileeditor

import (
	"strings"
	"time"
	"unicode"
)

// DescriptionMaxLength is the hard cap on the free-text description. Input is
// truncated to this length as it is typed, never rejected.
const DescriptionMaxLength = 500

// TruncateDescription caps a description at DescriptionMaxLength runes.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= DescriptionMaxLength {
		return s
	}
	return string(runes[:DescriptionMaxLength])
}

// ParseSkills splits a comma-separated skill string into individual skills.
// Segments are trimmed and empty segments dropped. Order is preserved and
// duplicates are kept.
func ParseSkills(s string) []string {
	skills := []string{}
	for _, part := range strings.Split(s, ",") {
		skill := strings.TrimSpace(part)
		if skill == "" {
			continue
		}
		skills = append(skills, skill)
	}
	return skills
}

// JoinSkills is the inverse of ParseSkills for seeding the edit form.
func JoinSkills(skills []string) string {
	return strings.Join(skills, ", ")
}

// GenderLabel maps a stored gender value to its display label. The three
// known values map to fixed labels; anything else falls back to the raw
// value with its first letter capitalized.
func GenderLabel(gender string) string {
	switch gender {
	case "male":
		return "Male"
	case "female":
		return "Female"
	case "other":
		return "Other"
	default:
		return capitalizeFirst(gender)
	}
}

// GenderBadge maps a stored gender value to the badge style used next to the
// label. Unknown values share the neutral badge.
func GenderBadge(gender string) string {
	switch gender {
	case "male":
		return "badge-male"
	case "female":
		return "badge-female"
	case "other":
		return "badge-other"
	default:
		return "badge-neutral"
	}
}

// Initials returns the uppercased first letters of the first two
// whitespace-separated tokens of the full name.
func Initials(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}

	var b strings.Builder
	for _, token := range tokens {
		runes := []rune(token)
		b.WriteRune(unicode.ToUpper(runes[0]))
	}
	return b.String()
}

// FormatBirthDate renders a stored birth date in long form ("2 January 2006")
// when it parses as an ISO date or as the RFC 3339 timestamp the API emits,
// otherwise returns the raw string unchanged.
func FormatBirthDate(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		t, err = time.Parse(time.RFC3339, raw)
	}
	if err != nil {
		return raw
	}
	return t.Format("2 January 2006")
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
