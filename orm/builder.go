package orm

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Builder is the predicate surface scopes are written against. Every
// predicate added is ANDed with the ones before it.
type Builder interface {
	WhereEquals(field string, value any) Builder
	WhereIn(field string, values []any) Builder
	WhereCompare(field, op string, value any) Builder
}

// GormAdapter implements Builder on top of a *gorm.DB.
type GormAdapter struct {
	DB *gorm.DB
}

// NewGormAdapter wraps db.
func NewGormAdapter(db *gorm.DB) *GormAdapter {
	return &GormAdapter{DB: db}
}

func (a *GormAdapter) WhereEquals(field string, value any) Builder {
	a.DB = a.DB.Where(clause.Eq{Column: clause.Column{Name: field}, Value: value})
	return a
}

func (a *GormAdapter) WhereIn(field string, values []any) Builder {
	a.DB = a.DB.Where(clause.IN{Column: clause.Column{Name: field}, Values: values})
	return a
}

// WhereCompare supports = != <> > >= < <=. Any other operator is recorded on
// the statement as ErrUnsupportedOperator.
func (a *GormAdapter) WhereCompare(field, op string, value any) Builder {
	col := clause.Column{Name: field}
	var expr clause.Expression
	switch op {
	case "=":
		expr = clause.Eq{Column: col, Value: value}
	case "!=", "<>":
		expr = clause.Neq{Column: col, Value: value}
	case ">":
		expr = clause.Gt{Column: col, Value: value}
	case ">=":
		expr = clause.Gte{Column: col, Value: value}
	case "<":
		expr = clause.Lt{Column: col, Value: value}
	case "<=":
		expr = clause.Lte{Column: col, Value: value}
	default:
		a.DB = withError(a.DB, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op))
		return a
	}
	a.DB = a.DB.Where(expr)
	return a
}

// withError records err on a statement-level copy of db, never on a shared
// root handle.
func withError(db *gorm.DB, err error) *gorm.DB {
	tx := db.Set("recordscope:error", err)
	_ = tx.AddError(err)
	return tx
}
