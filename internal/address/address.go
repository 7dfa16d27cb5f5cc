// Package address checks that free-text postal addresses have one of the
// accepted shapes. It does not verify that an address exists.
package address

import (
	"regexp"
)

// Form identifies which accepted shape an address matched.
type Form int

const (
	// FormShort is "<street> <number>".
	FormShort Form = iota + 1
	// FormLong is "<street> <number>, <zip> <city>".
	FormLong
)

func (f Form) String() string {
	switch f {
	case FormShort:
		return "short"
	case FormLong:
		return "long"
	default:
		return "unknown"
	}
}

// space matches what browsers treat as whitespace in a pattern: ASCII
// whitespace including \v, every Unicode space separator (NBSP among them),
// the byte order mark and the line/paragraph separators. \w and \d stay ASCII.
const space = `\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}`

// Both patterns are anchored; the whole query must conform.
var (
	shortPattern = regexp.MustCompile(`^([\w` + space + `]+)[` + space + `](\d+)$`)
	longPattern  = regexp.MustCompile(`^([\w` + space + `]+)[` + space + `](\d+),[` + space + `](\d+)[` + space + `](\w+)$`)
)

// Address holds the groups extracted from a query that passed validation.
// Zip and City are empty for FormShort.
type Address struct {
	Street string `json:"street"`
	Number string `json:"number"`
	Zip    string `json:"zip,omitempty"`
	City   string `json:"city,omitempty"`
	Form   Form   `json:"-"`
}

// Parse matches query against the short form, then the long form.
// The query is used as given: no trimming or case folding.
func Parse(query string) (Address, error) {
	if m := shortPattern.FindStringSubmatch(query); m != nil {
		return Address{Street: m[1], Number: m[2], Form: FormShort}, nil
	}
	if m := longPattern.FindStringSubmatch(query); m != nil {
		return Address{Street: m[1], Number: m[2], Zip: m[3], City: m[4], Form: FormLong}, nil
	}
	return Address{}, &FormatError{Query: query}
}

// Validate reports whether query has an accepted shape.
// It returns a *FormatError when it does not.
func Validate(query string) error {
	_, err := Parse(query)
	return err
}
