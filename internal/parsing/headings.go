// Package parsing turns free-text model evaluations into structured fields.
// Every function in this package is total: unrecognized input yields empty
// values, never an error.
package parsing

import (
	"regexp"
	"sort"
	"strings"
)

// HeadingKind identifies which section a heading opens.
type HeadingKind int

const (
	// HeadingProblem opens the main problems section.
	HeadingProblem HeadingKind = iota
	// HeadingImprovement opens the key improvement areas section.
	HeadingImprovement
)

func (k HeadingKind) String() string {
	switch k {
	case HeadingProblem:
		return "problem"
	case HeadingImprovement:
		return "improvement"
	default:
		return "unknown"
	}
}

// headingVariants lists every recognized phrasing per section.
// Words may be separated by any whitespace (or none), matching is
// case-insensitive and a leading ordinal such as "2." is allowed.
// New model phrasings go here.
var headingVariants = map[HeadingKind][]string{
	HeadingProblem: {
		"주요 문제점",
		"main problems",
	},
	HeadingImprovement: {
		"개선 필요 핵심 영역",
		"key improvement areas",
	},
}

// Heading is a located section heading. Start and End are byte offsets
// into the scanned text; End points just past the trailing colon.
type Heading struct {
	Kind  HeadingKind
	Start int
	End   int
}

var headingPatterns = compileHeadings(headingVariants)

func compileHeadings(variants map[HeadingKind][]string) map[HeadingKind][]*regexp.Regexp {
	compiled := make(map[HeadingKind][]*regexp.Regexp, len(variants))
	for kind, phrases := range variants {
		for _, phrase := range phrases {
			compiled[kind] = append(compiled[kind], headingPattern(phrase))
		}
	}
	return compiled
}

// headingPattern builds `(?i)(?:\d+\.\s*)?word\s*word...\s*:` for a phrase.
func headingPattern(phrase string) *regexp.Regexp {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:\d+\.\s*)?` + strings.Join(words, `\s*`) + `\s*:`)
}

// LocateHeadings returns every heading occurrence in text, ordered by offset.
// Occurrences of different variants of the same kind that overlap are
// reported once, keeping the earliest start.
func LocateHeadings(text string) []Heading {
	var found []Heading
	for _, kind := range []HeadingKind{HeadingProblem, HeadingImprovement} {
		for _, re := range headingPatterns[kind] {
			for _, loc := range re.FindAllStringIndex(text, -1) {
				found = append(found, Heading{Kind: kind, Start: loc[0], End: loc[1]})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].Start != found[j].Start {
			return found[i].Start < found[j].Start
		}
		return found[i].End > found[j].End
	})

	headings := found[:0]
	for _, h := range found {
		if n := len(headings); n > 0 && headings[n-1].Kind == h.Kind && h.Start < headings[n-1].End {
			continue
		}
		headings = append(headings, h)
	}
	return headings
}
