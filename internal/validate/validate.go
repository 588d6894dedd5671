// Package validate checks submitted form values against a declarative
// per-field constraint table and produces ordered, human-readable
// violations.
package validate

import (
	"regexp"
	"unicode/utf8"
)

// Field describes the constraints for a single form field
type Field struct {
	Name     string
	Required bool

	// Length bounds in runes; checked only when MaxLen > 0
	MinLen int
	MaxLen int

	// Pattern the value must match, if set
	Pattern *regexp.Regexp

	// Disallow rejects a single sentinel value (e.g. the placeholder option
	// of a select box)
	Disallow string

	// RequiredMessage is shown for missing values and sentinel matches.
	// PatternMessage is shown for pattern and length violations; it falls
	// back to RequiredMessage when empty.
	RequiredMessage string
	PatternMessage  string
}

// Violation is a single (field, message) validation failure
type Violation struct {
	Field   string
	Message string
}

// Schema is an ordered set of field constraints
type Schema []Field

// Validate evaluates the schema against submitted values. Per field the
// presence check runs first, then sentinel, length and pattern checks; the
// first violation per field wins. Violations across fields are collected in
// schema order, so callers can display violations[0] deterministically.
func (s Schema) Validate(values map[string]string) []Violation {
	var violations []Violation
	for _, f := range s {
		if v, ok := f.check(values[f.Name]); !ok {
			violations = append(violations, v)
		}
	}
	return violations
}

func (f Field) check(value string) (Violation, bool) {
	if value == "" {
		if f.Required {
			return Violation{Field: f.Name, Message: f.RequiredMessage}, false
		}
		return Violation{}, true
	}

	if f.Disallow != "" && value == f.Disallow {
		return Violation{Field: f.Name, Message: f.RequiredMessage}, false
	}

	if f.MaxLen > 0 {
		if n := utf8.RuneCountInString(value); n < f.MinLen || n > f.MaxLen {
			return Violation{Field: f.Name, Message: f.message()}, false
		}
	}

	if f.Pattern != nil && !f.Pattern.MatchString(value) {
		return Violation{Field: f.Name, Message: f.message()}, false
	}

	return Violation{}, true
}

func (f Field) message() string {
	if f.PatternMessage != "" {
		return f.PatternMessage
	}
	return f.RequiredMessage
}
