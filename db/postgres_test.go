package db

import (
	"testing"

	"github.com/shaurya/recordscope/config"
	"github.com/shaurya/recordscope/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{Host: "db", Port: 5433, Name: "shop", User: "app", Password: "pw", SSLMode: "disable"}
	assert.Equal(t, "host=db user=app password=pw dbname=shop port=5433 sslmode=disable", DSN(cfg))

	assert.Equal(t, "host=localhost user=postgres port=5432 sslmode=disable", DSN(config.Defaults().Database))
}

func TestDryRunRendersWithoutConnecting(t *testing.T) {
	gdb, err := DryRun(config.Defaults().Database)
	require.NoError(t, err)

	tx := gdb.Table("orders").Scopes(orm.NewScopes().Active()).Find(&[]map[string]any{})
	require.NoError(t, tx.Error)
	assert.Contains(t, tx.Statement.SQL.String(), `"is_active" = $1`)
}
