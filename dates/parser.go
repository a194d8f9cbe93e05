package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Parser turns a user supplied date value into an absolute timestamp.
type Parser interface {
	Parse(input any) (time.Time, error)
}

// ParseError is returned when an input cannot be turned into a timestamp.
type ParseError struct {
	Input any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("dates: cannot parse %v", e.Input)
	}
	return fmt.Sprintf("dates: cannot parse %v: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// DateParser understands literal date/time strings, the relative tokens
// now, today, midnight, yesterday and tomorrow, and time values.
type DateParser struct {
	location *time.Location
	clock    func() time.Time
	formats  []string
}

// Option configures a DateParser.
type Option func(*DateParser)

// WithLocation sets the zone literal strings are interpreted in.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *DateParser) {
		if loc != nil {
			p.location = loc
		}
	}
}

// WithClock replaces time.Now as the source of "now".
func WithClock(clock func() time.Time) Option {
	return func(p *DateParser) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithFormats adds layouts tried before the jinzhu/now defaults.
func WithFormats(layouts ...string) Option {
	return func(p *DateParser) {
		p.formats = append(p.formats, layouts...)
	}
}

// New creates a DateParser.
func New(opts ...Option) *DateParser {
	p := &DateParser{
		location: time.Local,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Location returns the zone used for literal strings.
func (p *DateParser) Location() *time.Location {
	return p.location
}

// Parse implements Parser.
func (p *DateParser) Parse(input any) (time.Time, error) {
	switch v := input.(type) {
	case time.Time:
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, &ParseError{Input: input, Err: fmt.Errorf("nil time")}
		}
		return *v, nil
	case string:
		return p.parseString(v)
	case fmt.Stringer:
		return p.parseString(v.String())
	default:
		return time.Time{}, &ParseError{Input: input, Err: fmt.Errorf("unsupported type %T", input)}
	}
}

func (p *DateParser) parseString(s string) (time.Time, error) {
	current := p.clock().In(p.location)
	token := strings.ToLower(strings.TrimSpace(s))

	switch token {
	case "", "now":
		return current, nil
	case "today", "midnight":
		return StartOfDay(current), nil
	case "yesterday":
		return StartOfDay(current.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return NextDay(current), nil
	}

	cfg := &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: p.location,
		TimeFormats:  append(append([]string{}, p.formats...), now.TimeFormats...),
	}
	t, err := cfg.With(current).Parse(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// NextDay returns midnight of the calendar day after t.
func NextDay(t time.Time) time.Time {
	return StartOfDay(StartOfDay(t).AddDate(0, 0, 1))
}
