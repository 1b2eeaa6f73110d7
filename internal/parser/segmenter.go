package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minSectionLength is the noise floor: candidate sections at or below this
// many characters after trimming are discarded, not reported as errors.
const minSectionLength = 20

// sectionDelimiter matches the separators people actually use when pasting
// idea lists: "IDEIA 1:", "ITEM 2:", "OS 3:" headers, a --- divider line, or
// three consecutive blank-ish newlines.
var sectionDelimiter = regexp.MustCompile(`(?mi)^[ \t]*(?:ideia|item|os)[ \t]+\d+[ \t]*:|^[ \t]*-{3,}[ \t]*$|\n{3,}`)

// Segment splits a raw text blob into candidate idea sections. Output order
// follows position in the source text. When no separator is present the whole
// text is a single section, provided it clears the length floor.
func Segment(text string) []string {
	parts := sectionDelimiter.Split(text, -1)

	sections := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if utf8.RuneCountInString(trimmed) <= minSectionLength {
			continue
		}
		sections = append(sections, trimmed)
	}

	return sections
}
