package orm_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shaurya/recordscope/orm"
	rtesting "github.com/shaurya/recordscope/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidationBlocksInvalidCreate(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))

	err := s.DB.Create(&Widget{}).Error

	var verr *orm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "name")
	s.ExpectationsWereMet()
}

func TestRegisterValidationBlocksInvalidBatch(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))

	err := s.DB.Create(&[]*Widget{{Name: "ok"}, {}}).Error

	var verr *orm.ValidationError
	require.ErrorAs(t, err, &verr)
	s.ExpectationsWereMet()
}

func TestRegisterValidationAllowsValidCreate(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))
	s.Mock.ExpectQuery(`INSERT INTO "widgets"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	w := &Widget{Name: "Bob"}
	require.NoError(t, s.DB.Create(w).Error)
	assert.Equal(t, uint(1), w.ID)
	s.ExpectationsWereMet()
}

func TestRegisterValidationIgnoresPlainModels(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))
	s.Mock.ExpectQuery(`INSERT INTO "notes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	require.NoError(t, s.DB.Create(&Note{}).Error)
	s.ExpectationsWereMet()
}

func TestRegisterValidationChecksUpdatedValues(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))
	for i := 0; i < 3; i++ {
		s.Mock.ExpectExec(`UPDATE "widgets" SET .*"name"=`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	w := &Widget{}
	w.ID = 5
	require.NoError(t, s.DB.Model(w).Update("name", "Alice").Error)

	w = &Widget{}
	w.ID = 6
	require.NoError(t, s.DB.Model(w).Updates(map[string]any{"Name": "Bob"}).Error)

	w = &Widget{}
	w.ID = 7
	require.NoError(t, s.DB.Model(w).Updates(Widget{Name: "Carol"}).Error)
	s.ExpectationsWereMet()
}

func TestRegisterValidationBlocksUpdateThatBreaksRules(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))

	w := &Widget{Name: "Alice"}
	w.ID = 5
	err := s.DB.Model(w).Update("name", "").Error

	var verr *orm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"name"}, verr.Fields())

	err = s.DB.Model(w).Updates(map[string]any{"name": ""}).Error
	require.ErrorAs(t, err, &verr)
	s.ExpectationsWereMet()
}

func TestRegisterValidationChecksSavedModel(t *testing.T) {
	s := rtesting.NewSuite(t)
	require.NoError(t, orm.RegisterValidation(s.DB))

	w := &Widget{}
	w.ID = 5
	err := s.DB.Save(w).Error

	var verr *orm.ValidationError
	require.ErrorAs(t, err, &verr)
	s.ExpectationsWereMet()
}
