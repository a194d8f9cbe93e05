package orm

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Condition pairs a column with the value it must hold. A slice or array
// value (other than []byte) is a set: the column must hold one of its members.
type Condition struct {
	Field string
	Value any
}

// CheckMap is an ordered list of conditions, ANDed together. A nil CheckMap
// disables the scope it configures.
//
//	orm.Check("is_active", []any{1, "Yes"}).And("status", "Delivered")
type CheckMap []Condition

var (
	// DefaultActiveCheck is used when a record type does not configure one.
	DefaultActiveCheck = Check("is_active", 1)

	// DefaultInactiveCheck is used when a record type does not configure one.
	DefaultInactiveCheck = Check("is_active", 0)
)

// Check starts a CheckMap with a single condition.
func Check(field string, value any) CheckMap {
	return CheckMap{{Field: field, Value: value}}
}

// And returns a copy of c with one more condition appended.
func (c CheckMap) And(field string, value any) CheckMap {
	out := make(CheckMap, len(c), len(c)+1)
	copy(out, c)
	return append(out, Condition{Field: field, Value: value})
}

// Apply adds one predicate per condition to b: an IN predicate for set
// values, an equality predicate otherwise.
func (c CheckMap) Apply(b Builder) Builder {
	for _, cond := range c {
		if values, ok := SetValues(cond.Value); ok {
			b = b.WhereIn(cond.Field, values)
			continue
		}
		b = b.WhereEquals(cond.Field, cond.Value)
	}
	return b
}

// SetValues reports whether v is a set and, if so, returns its members.
func SetValues(v any) ([]any, bool) {
	switch vv := v.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		return vv, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// ParseCheck builds a CheckMap from "field=value" strings. Members of a set
// are separated by "|"; integer-looking values become int64.
//
//	ParseCheck([]string{"is_active=1", "status=Delivered|Shipped"})
func ParseCheck(entries []string) (CheckMap, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	var out CheckMap
	for _, entry := range entries {
		field, raw, ok := strings.Cut(entry, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("orm: invalid check %q, want field=value", entry)
		}
		if !strings.Contains(raw, "|") {
			out = out.And(field, scalar(raw))
			continue
		}
		var members []any
		for _, m := range strings.Split(raw, "|") {
			members = append(members, scalar(m))
		}
		out = out.And(field, members)
	}
	return out, nil
}

func scalar(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return s
}
