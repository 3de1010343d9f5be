// Package store provides SQLite-backed persistence for completed
// assessments. The engine itself never touches storage; the API layer
// records each run here after the pipeline finishes.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/heatpath/survey-engine/internal/domain"
)

// schemaV1 defines the initial database schema.
const schemaV1 = `
CREATE TABLE IF NOT EXISTS assessments (
	id               TEXT PRIMARY KEY,
	created_at_unix  INTEGER NOT NULL,
	contract_version INTEGER NOT NULL DEFAULT 1,
	signature        TEXT NOT NULL DEFAULT 'unknown',
	recommendation   TEXT NOT NULL DEFAULT '',
	confidence       TEXT NOT NULL DEFAULT '',
	survey_json      TEXT NOT NULL DEFAULT '{}',
	output_json      TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_assessments_created ON assessments(created_at_unix);
`

// NewDB opens a SQLite database at the given path with recommended pragmas
// and runs the V1 schema migration.
func NewDB(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, domain.WrapEngineError(domain.ErrStoreInit.Code, "open database", err)
	}

	// Limit connections to 1 for SQLite (WAL allows concurrent reads but single writer).
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, domain.WrapEngineError(domain.ErrSchemaMigration.Code, "migrate schema", err)
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(), schemaV1)
	return err
}
