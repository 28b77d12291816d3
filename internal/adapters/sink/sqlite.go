package sink

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.ridx.dev/ridx/internal/core/domain"
	"go.trai.ch/zerr"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS index_levels (
	date             TEXT PRIMARY KEY,
	level            REAL NOT NULL,
	portfolio_return REAL NOT NULL
);`

// SQLite writes the series into an index_levels table. Rows are upserted
// by date so repeated writes after recomputation converge on the latest
// values.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "opening sqlite database"), "file", path)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, "creating index_levels table"), "file", path)
	}
	return &SQLite{db: db}, nil
}

// Write upserts all samples within a single transaction.
func (s *SQLite) Write(samples []domain.Sample) error {
	tx, err := s.db.Begin()
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}

	stmt, err := tx.Prepare(`
		INSERT INTO index_levels (date, level, portfolio_return) VALUES (?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET level = excluded.level, portfolio_return = excluded.portfolio_return`)
	if err != nil {
		_ = tx.Rollback()
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}
	defer func() { _ = stmt.Close() }()

	for _, sample := range samples {
		if _, err := stmt.Exec(sample.Date.String(), sample.Level, sample.Return); err != nil {
			_ = tx.Rollback()
			return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "date", sample.Date.String())
		}
	}
	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrSinkWriteFailed.Error())
	}
	return nil
}

// Close closes the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
