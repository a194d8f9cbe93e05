package orm

import (
	"context"

	"gorm.io/gorm"
)

// QueryBuilder provides a generic, chainable query interface wrapping GORM.
type QueryBuilder[T any] struct {
	db      *gorm.DB
	scopes  *Scopes
	page    int
	perPage int
}

// DefaultPerPage is the page size when PerPage is not called.
const DefaultPerPage = 25

// Query creates a new QueryBuilder for the given model type.
func Query[T any](db *gorm.DB) *QueryBuilder[T] {
	return &QueryBuilder[T]{db: db, perPage: DefaultPerPage}
}

// Where adds a condition in any form GORM accepts.
func (q *QueryBuilder[T]) Where(query any, args ...any) *QueryBuilder[T] {
	q.db = q.db.Where(query, args...)
	return q
}

// Order adds an ORDER BY clause; First falls back to the primary key.
func (q *QueryBuilder[T]) Order(value any) *QueryBuilder[T] {
	q.db = q.db.Order(value)
	return q
}

// Page selects a 1-based page for All. Values below 1 select the first page.
func (q *QueryBuilder[T]) Page(page int) *QueryBuilder[T] {
	q.page = max(page, 1)
	return q
}

// PerPage sets the page size used by All; non-positive sizes reset it to
// DefaultPerPage.
func (q *QueryBuilder[T]) PerPage(n int) *QueryBuilder[T] {
	if n < 1 {
		n = DefaultPerPage
	}
	q.perPage = n
	return q
}

// DB returns the underlying GORM handle with every clause added so far.
func (q *QueryBuilder[T]) DB() *gorm.DB {
	return q.db
}

// WithScopes replaces the activity and created-date configuration derived
// from T.
func (q *QueryBuilder[T]) WithScopes(s *Scopes) *QueryBuilder[T] {
	q.scopes = s
	return q
}

// Scopes returns the scope configuration used by Active, Inactive and the
// created-date filters.
func (q *QueryBuilder[T]) Scopes() *Scopes {
	if q.scopes == nil {
		q.scopes = ScopesFor[T]()
	}
	return q.scopes
}

// Active keeps records matching T's active check.
func (q *QueryBuilder[T]) Active() *QueryBuilder[T] {
	return q.Scope(q.Scopes().Active())
}

// Inactive keeps records matching T's inactive check.
func (q *QueryBuilder[T]) Inactive() *QueryBuilder[T] {
	return q.Scope(q.Scopes().Inactive())
}

// CreatedBetween keeps records created in [from, to). A bad date surfaces as
// the error of the finishing call (All, First, Count...).
func (q *QueryBuilder[T]) CreatedBetween(from, to any, field ...string) *QueryBuilder[T] {
	return q.Scope(q.Scopes().CreatedBetween(from, to, field...))
}

// CreatedBetweenDates keeps records created in (from, to] by date.
func (q *QueryBuilder[T]) CreatedBetweenDates(from, to any, field ...string) *QueryBuilder[T] {
	return q.Scope(q.Scopes().CreatedBetweenDates(from, to, field...))
}

// CreatedOn keeps records created on the calendar day of on.
func (q *QueryBuilder[T]) CreatedOn(on any, field ...string) *QueryBuilder[T] {
	return q.Scope(q.Scopes().CreatedOn(on, field...))
}

// Scope applies one or more named scopes (functions that modify the query).
func (q *QueryBuilder[T]) Scope(funcs ...func(*gorm.DB) *gorm.DB) *QueryBuilder[T] {
	for _, f := range funcs {
		q.db = f(q.db)
	}
	return q
}

// paginated applies page and perPage. Without a page every row matches.
func (q *QueryBuilder[T]) paginated() *gorm.DB {
	if q.page == 0 {
		return q.db
	}
	return q.db.Offset((q.page - 1) * q.perPage).Limit(q.perPage)
}

// All returns the matching records of the current page, or every match when
// no page was set.
func (q *QueryBuilder[T]) All() ([]T, error) {
	var results []T
	if err := q.paginated().Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// First returns the first match. gorm.ErrRecordNotFound is returned when
// nothing matches.
func (q *QueryBuilder[T]) First() (*T, error) {
	result := new(T)
	if err := q.db.First(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Persist implements Persister: it inserts v when its primary key is zero
// and updates it otherwise.
func (q *QueryBuilder[T]) Persist(ctx context.Context, v *T, opts SaveOptions) error {
	db := q.db.WithContext(ctx)
	if opts.SkipHooks || opts.FullSaveAssociations {
		db = db.Session(&gorm.Session{
			SkipHooks:            opts.SkipHooks,
			FullSaveAssociations: opts.FullSaveAssociations,
		})
	}
	if len(opts.Select) > 0 {
		db = db.Select(opts.Select)
	}
	if len(opts.Omit) > 0 {
		db = db.Omit(opts.Omit...)
	}
	return db.Save(v).Error
}

// Count returns the number of matches, ignoring pagination.
func (q *QueryBuilder[T]) Count() (int64, error) {
	var n int64
	err := q.db.Model(new(T)).Count(&n).Error
	return n, err
}

// Exists reports whether anything matches.
func (q *QueryBuilder[T]) Exists() (bool, error) {
	n, err := q.Count()
	return n > 0, err
}
