package orm_test

import (
	"testing"

	"github.com/shaurya/recordscope/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetValues(t *testing.T) {
	values, ok := orm.SetValues([]int{1, 2})
	require.True(t, ok)
	assert.Equal(t, []any{1, 2}, values)

	values, ok = orm.SetValues([2]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, values)

	for _, scalar := range []any{1, "Yes", []byte("raw"), nil, true} {
		_, ok := orm.SetValues(scalar)
		assert.False(t, ok, "%#v", scalar)
	}
}

func TestCheckMapAndDoesNotShareBacking(t *testing.T) {
	base := orm.Check("is_active", 1)
	a := base.And("status", "open")
	b := base.And("status", "closed")

	assert.Len(t, base, 1)
	assert.Equal(t, "open", a[1].Value)
	assert.Equal(t, "closed", b[1].Value)
}

func TestParseCheck(t *testing.T) {
	check, err := orm.ParseCheck([]string{"is_active=1", " status = Delivered|Shipped "})
	require.NoError(t, err)

	assert.Equal(t, orm.CheckMap{
		{Field: "is_active", Value: int64(1)},
		{Field: "status", Value: []any{"Delivered", "Shipped"}},
	}, check)

	check, err = orm.ParseCheck(nil)
	require.NoError(t, err)
	assert.Nil(t, check)

	_, err = orm.ParseCheck([]string{"is_active"})
	assert.Error(t, err)
	_, err = orm.ParseCheck([]string{"=1"})
	assert.Error(t, err)
}
