package orm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shaurya/recordscope/orm"
	rtesting "github.com/shaurya/recordscope/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Note struct {
	ID   uint
	Body string
}

func TestRecordWithoutRulesIsAlwaysValid(t *testing.T) {
	r, err := orm.NewRecord(&Note{})
	require.NoError(t, err)

	assert.True(t, r.IsValidated())
	assert.Nil(t, r.Errors())

	w, err := orm.NewRecord(&Widget{}, orm.WithRules(nil))
	require.NoError(t, err)
	assert.True(t, w.IsValidated())
}

func TestRecordRejectsNilModel(t *testing.T) {
	_, err := orm.NewRecord[Note](nil)
	require.ErrorIs(t, err, orm.ErrNilModel)
}

func TestSaveInvalidRecordSkipsPersistence(t *testing.T) {
	r, err := orm.NewRecord(&Widget{Name: ""})
	require.NoError(t, err)
	require.False(t, r.IsValidated())

	p := &rtesting.Persister[Widget]{}
	err = r.Save(context.Background(), p)

	var verr *orm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name"}, verr.Fields())
	assert.Equal(t, []string{"name is required"}, verr.Errors["name"])
	assert.Equal(t, 0, p.Calls)
}

func TestSaveValidRecordPersistsOnce(t *testing.T) {
	w := &Widget{Name: "Alice"}
	r, err := orm.NewRecord(w)
	require.NoError(t, err)
	require.True(t, r.IsValidated())

	p := &rtesting.Persister[Widget]{}
	err = r.Save(context.Background(), p, orm.Omit("email"), orm.SkipHooks())
	require.NoError(t, err)

	assert.Equal(t, 1, p.Calls)
	assert.Same(t, w, p.Last)
	assert.Equal(t, orm.SaveOptions{Omit: []string{"email"}, SkipHooks: true}, p.Opts)
}

func TestSavePassesPersistenceErrorsThrough(t *testing.T) {
	boom := errors.New("connection reset")
	r, err := orm.NewRecord(&Widget{Name: "Alice"})
	require.NoError(t, err)

	err = r.Save(context.Background(), &rtesting.Persister[Widget]{Err: boom})
	assert.Same(t, boom, err)
}

func TestValidationIsComputedAtConstruction(t *testing.T) {
	w := &Widget{Name: "Alice"}
	r, err := orm.NewRecord(w)
	require.NoError(t, err)

	w.Name = ""
	assert.True(t, r.IsValidated())
}

func TestWithRulesOverridesModelRules(t *testing.T) {
	r, err := orm.NewRecord(&Widget{Name: "Alice", Email: "not-an-email"},
		orm.WithRules(orm.Rules{"email": "required,email"}))
	require.NoError(t, err)

	assert.False(t, r.IsValidated())
	assert.Equal(t, map[string][]string{
		"email": {"email must be a valid email address"},
	}, r.Errors())
}

func TestQueryBuilderPersistsRecord(t *testing.T) {
	s := rtesting.NewSuite(t)
	s.Mock.ExpectQuery(`INSERT INTO "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	w := &Widget{Name: "Alice"}
	w.Activate()
	r, err := orm.NewRecord(w)
	require.NoError(t, err)

	require.NoError(t, r.Save(context.Background(), orm.Query[Widget](s.DB)))
	assert.Equal(t, uint(7), w.ID)
	s.ExpectationsWereMet()
}
