package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDuckDB(t *testing.T) {
	db, err := InitDuckDB("")
	require.NoError(t, err)
	defer db.Close()

	var tables []string
	err = db.Select(&tables, `
	select table_name
	from information_schema.tables
	order by table_name
	`)
	require.NoError(t, err)
	assert.Subset(t, tables, []string{"games", "game_hunters", "game_evidence"})
}

func TestInitDuckDBReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")

	db, err := InitDuckDB(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDuckDB(path)
	require.NoError(t, err, "schema applies to an existing file")
	require.NoError(t, db.Close())
}
