package storage

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
)

//go:embed schema/games.sql
var gamesSchema string

type DuckDB = *sqlx.DB

// InitDuckDB opens the database at path and applies the schema.
// An empty path opens an in-memory database.
func InitDuckDB(path string) (DuckDB, error) {
	db, err := sqlx.Connect("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("connect duckdb: %s", err)
	}

	if _, err := db.Exec(gamesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %s", err)
	}

	return db, nil
}
