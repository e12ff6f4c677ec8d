package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/environment-evaluator/internal/types"
)

var (
	leadingOrdinal       = regexp.MustCompile(`^\s*\d+\.\s*`)
	trailingOrdinal      = regexp.MustCompile(`\s*\d+\.\s*$`)
	strayTrailingOrdinal = regexp.MustCompile(`\s+\d+\.\s*$`)
)

// ExtractSections pulls the problem and improvement-area sections out of a
// model response. A section that cannot be located is returned as "".
func ExtractSections(text string) types.Sections {
	headings := LocateHeadings(text)
	return types.Sections{
		Problem:          problemSpan(text, headings),
		ImprovementAreas: improvementSpan(text, headings),
	}
}

// problemSpan returns the text between the first problem heading and the
// first improvement heading that starts after it.
func problemSpan(text string, headings []Heading) string {
	start := -1
	for _, h := range headings {
		switch {
		case start < 0 && h.Kind == HeadingProblem:
			start = h.End
		case start >= 0 && h.Kind == HeadingImprovement && h.Start >= start:
			return StripOrdinals(text[start:h.Start])
		}
	}
	return ""
}

// improvementSpan returns everything after the last improvement heading.
func improvementSpan(text string, headings []Heading) string {
	for i := len(headings) - 1; i >= 0; i-- {
		if headings[i].Kind == HeadingImprovement {
			return strings.TrimSpace(text[headings[i].End:])
		}
	}
	return ""
}

// StripOrdinals trims a span and removes the list numbering a model leaves
// around it: one leading "N." token and up to two trailing ones.
func StripOrdinals(span string) string {
	s := strings.TrimSpace(span)
	s = leadingOrdinal.ReplaceAllString(s, "")
	s = trailingOrdinal.ReplaceAllString(s, "")
	s = strayTrailingOrdinal.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
