package schedule

import (
	"strings"
	"unicode"
)

// Query is free-text search input split into street and house number.
type Query struct {
	Street string
	Number string
}

// ParseQuery treats the last token as the house number when it contains a digit and a street precedes it.
// "Marktplatz 1a" becomes {Marktplatz, 1a}; "Hauptstraße" has no number.
func ParseQuery(input string) Query {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Query{}
	}

	last := parts[len(parts)-1]
	hasDigit := strings.IndexFunc(last, unicode.IsDigit) >= 0
	if hasDigit && len(parts) > 1 {
		return Query{
			Street: strings.Join(parts[:len(parts)-1], " "),
			Number: last,
		}
	}

	return Query{Street: strings.Join(parts, " ")}
}

// IsEmpty reports whether no street was given.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Street) == ""
}
