package orm

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNilModel is returned when a record is built around a nil model.
	ErrNilModel = errors.New("orm: nil model")

	// ErrUnsupportedOperator is recorded when WhereCompare gets an operator
	// it cannot express.
	ErrUnsupportedOperator = errors.New("orm: unsupported comparison operator")
)

// ValidationError is returned by Save when the record failed its rules.
// Errors maps each column to its messages.
type ValidationError struct {
	Errors map[string][]string
}

func (e *ValidationError) Error() string {
	fields := e.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Errors[f], "; ")))
	}
	return "orm: validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the sorted names of the failing columns.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
