package host

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

func fold(s string) string {
	return folder.String(s)
}

// openingCategories are the categories opening families are modelled in.
var openingCategories = []string{"generic models", "обобщенные модели"}

// openingKeywords mark a family as a hole or an opening.
var openingKeywords = []string{"hole", "opening", "отверстие", "проем", "проём"}

// IsOpening reports whether an element of the given category and family
// name is a framable opening. Comparison is case-insensitive.
func IsOpening(category, family string) bool {
	c := fold(strings.TrimSpace(category))
	matched := false
	for _, oc := range openingCategories {
		if c == oc {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	f := fold(family)
	for _, kw := range openingKeywords {
		if strings.Contains(f, kw) {
			return true
		}
	}
	return false
}
