package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryUpHasADown(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	for _, n := range names {
		if strings.HasSuffix(n, ".up.sql") {
			assert.True(t, set[strings.TrimSuffix(n, ".up.sql")+".down.sql"], "missing down migration for %s", n)
		}
	}
}

func TestSchemaCoversEveryTable(t *testing.T) {
	var schema strings.Builder
	names, err := fs.Glob(files, "*.up.sql")
	require.NoError(t, err)
	for _, n := range names {
		b, err := fs.ReadFile(files, n)
		require.NoError(t, err)
		schema.Write(b)
	}
	for _, table := range []string{
		"users", "currencies", "exchanges", "categories", "asset_types",
		"user_summaries", "wallets", "wallet_balances", "transactions", "assets",
	} {
		assert.Contains(t, schema.String(), "CREATE TABLE IF NOT EXISTS "+table+" ", table)
	}
}
