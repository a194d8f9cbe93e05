package orm_test

import (
	"testing"

	"github.com/shaurya/recordscope/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsOfUsesColumnNames(t *testing.T) {
	w := &Widget{Name: "Alice", Email: "a@example.com"}
	w.Activate()

	fields, err := orm.FieldsOf(w)
	require.NoError(t, err)

	assert.Equal(t, "Alice", fields["name"])
	assert.Equal(t, "a@example.com", fields["email"])
	assert.Equal(t, 1, fields["is_active"])
	assert.Contains(t, fields, "created_at")
}

func TestValidate(t *testing.T) {
	assert.Nil(t, orm.Validate(orm.Fields{"name": "Alice"}, orm.Rules{"name": "required"}))
	assert.Nil(t, orm.Validate(orm.Fields{"name": ""}, nil))

	errs := orm.Validate(orm.Fields{"name": "", "age": 3}, orm.Rules{
		"name":    "required",
		"age":     "gte=18",
		"missing": "required",
	})
	assert.Equal(t, []string{"name is required"}, errs["name"])
	assert.Equal(t, []string{"age must be greater than or equal to 18"}, errs["age"])
	assert.Equal(t, []string{"missing is required"}, errs["missing"])
}

func TestValidateFallsBackForUntranslatedTags(t *testing.T) {
	errs := orm.Validate(orm.Fields{"code": "abc"}, orm.Rules{"code": "uuid4"})
	assert.Equal(t, []string{"code is invalid (uuid4)"}, errs["code"])
}

func TestValidateNumericRulesAreTags(t *testing.T) {
	rules := orm.Rules{"age": "gte=5", "nickname": ""}

	assert.Nil(t, orm.Validate(orm.Fields{"age": 5}, rules))

	errs := orm.Validate(orm.Fields{"age": 4}, rules)
	assert.Equal(t, map[string][]string{
		"age": {"age must be greater than or equal to 5"},
	}, errs)
}
