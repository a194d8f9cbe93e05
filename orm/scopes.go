package orm

import (
	"time"

	"github.com/shaurya/recordscope/dates"
	"gorm.io/gorm"
)

// ScopeFunc is a named scope, a function that modifies a GORM query.
// Usage: orm.Query[User](db).Scope(scopes.Active()).All()
type ScopeFunc = func(*gorm.DB) *gorm.DB

// DefaultCreatedAtColumn is the column GORM writes creation times to.
const DefaultCreatedAtColumn = "created_at"

// Capability interfaces a model may implement to configure its scopes.
// They are looked up on a pointer to the model, like GORM's TableName.
type (
	ActiveChecker interface {
		ActiveCheck() CheckMap
	}

	InactiveChecker interface {
		InactiveCheck() CheckMap
	}

	CreatedAtColumner interface {
		CreatedAtColumn() string
	}
)

// Scopes holds the activity checks and created-at settings of one record
// type. It is immutable once built.
type Scopes struct {
	active    CheckMap
	inactive  CheckMap
	createdAt string
	dates     dates.Parser
}

// ScopeOption configures Scopes.
type ScopeOption func(*Scopes)

// WithActiveCheck replaces the active check. nil disables the scope.
func WithActiveCheck(c CheckMap) ScopeOption {
	return func(s *Scopes) { s.active = c }
}

// WithInactiveCheck replaces the inactive check. nil disables the scope.
func WithInactiveCheck(c CheckMap) ScopeOption {
	return func(s *Scopes) { s.inactive = c }
}

// WithCreatedAtColumn sets the column the created-date scopes filter on.
func WithCreatedAtColumn(column string) ScopeOption {
	return func(s *Scopes) {
		if column != "" {
			s.createdAt = column
		}
	}
}

// WithDateParser sets the parser used for every date bound.
func WithDateParser(p dates.Parser) ScopeOption {
	return func(s *Scopes) {
		if p != nil {
			s.dates = p
		}
	}
}

// NewScopes builds Scopes from the defaults and opts.
func NewScopes(opts ...ScopeOption) *Scopes {
	s := &Scopes{
		active:    DefaultActiveCheck,
		inactive:  DefaultInactiveCheck,
		createdAt: DefaultCreatedAtColumn,
		dates:     dates.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScopesFor builds Scopes for model type T from the capability interfaces T
// implements; opts are applied afterwards and win.
func ScopesFor[T any](opts ...ScopeOption) *Scopes {
	var model T
	var fromModel []ScopeOption
	m := any(&model)
	if c, ok := m.(ActiveChecker); ok {
		fromModel = append(fromModel, WithActiveCheck(c.ActiveCheck()))
	}
	if c, ok := m.(InactiveChecker); ok {
		fromModel = append(fromModel, WithInactiveCheck(c.InactiveCheck()))
	}
	if c, ok := m.(CreatedAtColumner); ok {
		fromModel = append(fromModel, WithCreatedAtColumn(c.CreatedAtColumn()))
	}
	return NewScopes(append(fromModel, opts...)...)
}

// ActiveCheck returns the configured active check.
func (s *Scopes) ActiveCheck() CheckMap { return s.active }

// InactiveCheck returns the configured inactive check.
func (s *Scopes) InactiveCheck() CheckMap { return s.inactive }

// CreatedAtColumn returns the default column for created-date scopes.
func (s *Scopes) CreatedAtColumn() string { return s.createdAt }

// ApplyActive adds the active check to b. A nil check adds nothing.
func (s *Scopes) ApplyActive(b Builder) Builder {
	if s.active == nil {
		return b
	}
	return s.active.Apply(b)
}

// ApplyInactive adds the inactive check to b. A nil check adds nothing.
func (s *Scopes) ApplyInactive(b Builder) Builder {
	if s.inactive == nil {
		return b
	}
	return s.inactive.Apply(b)
}

// ApplyCreatedBetween restricts field to [from, to) at second precision.
// field defaults to the created-at column.
func (s *Scopes) ApplyCreatedBetween(b Builder, from, to any, field ...string) (Builder, error) {
	lo, hi, err := s.bounds(from, to)
	if err != nil {
		return b, err
	}
	col := s.column(field)
	b = b.WhereCompare(col, ">=", lo.Truncate(time.Second))
	return b.WhereCompare(col, "<", hi.Truncate(time.Second)), nil
}

// ApplyCreatedBetweenDates restricts field to (from, to] with both bounds
// truncated to midnight. The column keeps its time of day, so a row from the
// from day is kept unless it falls exactly on midnight, and a row from the to
// day is kept only if it falls exactly on midnight. Use ApplyCreatedBetween
// with NextDay bounds to keep whole days.
func (s *Scopes) ApplyCreatedBetweenDates(b Builder, from, to any, field ...string) (Builder, error) {
	lo, hi, err := s.bounds(from, to)
	if err != nil {
		return b, err
	}
	col := s.column(field)
	b = b.WhereCompare(col, ">", dates.StartOfDay(lo))
	return b.WhereCompare(col, "<=", dates.StartOfDay(hi)), nil
}

// ApplyCreatedOn restricts field to the calendar day of on.
func (s *Scopes) ApplyCreatedOn(b Builder, on any, field ...string) (Builder, error) {
	day, err := s.dates.Parse(on)
	if err != nil {
		return b, err
	}
	col := s.column(field)
	b = b.WhereCompare(col, ">=", dates.StartOfDay(day))
	return b.WhereCompare(col, "<", dates.NextDay(day)), nil
}

func (s *Scopes) bounds(from, to any) (time.Time, time.Time, error) {
	lo, err := s.dates.Parse(from)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	hi, err := s.dates.Parse(to)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return lo, hi, nil
}

func (s *Scopes) column(field []string) string {
	if len(field) > 0 && field[0] != "" {
		return field[0]
	}
	return s.createdAt
}

// Active returns the active check as a GORM scope.
func (s *Scopes) Active() ScopeFunc {
	return func(db *gorm.DB) *gorm.DB {
		return gormScope(db, func(b Builder) (Builder, error) { return s.ApplyActive(b), nil })
	}
}

// Inactive returns the inactive check as a GORM scope.
func (s *Scopes) Inactive() ScopeFunc {
	return func(db *gorm.DB) *gorm.DB {
		return gormScope(db, func(b Builder) (Builder, error) { return s.ApplyInactive(b), nil })
	}
}

// CreatedBetween is the GORM scope form of ApplyCreatedBetween. Parse errors
// are added to the statement.
func (s *Scopes) CreatedBetween(from, to any, field ...string) ScopeFunc {
	return func(db *gorm.DB) *gorm.DB {
		return gormScope(db, func(b Builder) (Builder, error) {
			return s.ApplyCreatedBetween(b, from, to, field...)
		})
	}
}

// CreatedBetweenDates is the GORM scope form of ApplyCreatedBetweenDates.
func (s *Scopes) CreatedBetweenDates(from, to any, field ...string) ScopeFunc {
	return func(db *gorm.DB) *gorm.DB {
		return gormScope(db, func(b Builder) (Builder, error) {
			return s.ApplyCreatedBetweenDates(b, from, to, field...)
		})
	}
}

// CreatedOn is the GORM scope form of ApplyCreatedOn.
func (s *Scopes) CreatedOn(on any, field ...string) ScopeFunc {
	return func(db *gorm.DB) *gorm.DB {
		return gormScope(db, func(b Builder) (Builder, error) {
			return s.ApplyCreatedOn(b, on, field...)
		})
	}
}

func gormScope(db *gorm.DB, apply func(Builder) (Builder, error)) *gorm.DB {
	a := NewGormAdapter(db)
	if _, err := apply(a); err != nil {
		return withError(a.DB, err)
	}
	return a.DB
}
