package testing

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shaurya/recordscope/orm"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Suite provides a GORM handle on the Postgres dialector backed by sqlmock,
// so tests can inspect generated SQL and script database responses.
type Suite struct {
	DB   *gorm.DB
	Mock sqlmock.Sqlmock
	t    *testing.T
}

// NewSuite creates a Suite; the mock connection is closed with the test.
func NewSuite(t *testing.T) *Suite {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm: %v", err)
	}

	return &Suite{DB: db, Mock: mock, t: t}
}

// DryRun returns a session that builds statements without executing them.
func (s *Suite) DryRun() *gorm.DB {
	return s.DB.Session(&gorm.Session{DryRun: true})
}

// SQL runs fn against a dry-run session and returns the statement it built.
func (s *Suite) SQL(fn func(tx *gorm.DB) *gorm.DB) (string, []any, error) {
	tx := fn(s.DryRun())
	return tx.Statement.SQL.String(), tx.Statement.Vars, tx.Error
}

// ExpectationsWereMet fails the test if scripted database calls are missing.
func (s *Suite) ExpectationsWereMet() {
	s.t.Helper()
	if err := s.Mock.ExpectationsWereMet(); err != nil {
		s.t.Errorf("unmet database expectations: %v", err)
	}
}

// --- Recorder ---

// Predicate is one call made on a Recorder.
type Predicate struct {
	Kind  string // "equals", "in" or "compare"
	Field string
	Op    string
	Value any
}

// Recorder is an orm.Builder that only records the predicates it receives.
type Recorder struct {
	Predicates []Predicate
}

func (r *Recorder) WhereEquals(field string, value any) orm.Builder {
	r.Predicates = append(r.Predicates, Predicate{Kind: "equals", Field: field, Op: "=", Value: value})
	return r
}

func (r *Recorder) WhereIn(field string, values []any) orm.Builder {
	r.Predicates = append(r.Predicates, Predicate{Kind: "in", Field: field, Op: "IN", Value: values})
	return r
}

func (r *Recorder) WhereCompare(field, op string, value any) orm.Builder {
	r.Predicates = append(r.Predicates, Predicate{Kind: "compare", Field: field, Op: op, Value: value})
	return r
}

// --- Persister ---

// Persister is an orm.Persister that counts calls and returns Err.
type Persister[T any] struct {
	Calls int
	Last  *T
	Opts  orm.SaveOptions
	Err   error
}

func (p *Persister[T]) Persist(_ context.Context, model *T, opts orm.SaveOptions) error {
	p.Calls++
	p.Last = model
	p.Opts = opts
	return p.Err
}
