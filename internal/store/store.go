// Package store loads the play table into an in-memory sqlite database and
// exposes the canonical reports as declarative GROUP BY queries.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // registers the pure-Go sqlite driver

	"github.com/gcheema/passrush/internal/domain/model"
)

const schema = `
CREATE TABLE plays (
    play_id          INTEGER PRIMARY KEY,
    down             INTEGER NOT NULL,
    distance         INTEGER NOT NULL,
    field_position   REAL    NOT NULL,
    quarter          INTEGER NOT NULL,
    score_diff       INTEGER NOT NULL,
    pressure_applied INTEGER NOT NULL,
    time_to_pressure REAL,
    rushers          INTEGER NOT NULL,
    def_alignment    TEXT    NOT NULL,
    time_to_throw    REAL    NOT NULL,
    completion       INTEGER NOT NULL,
    sack             INTEGER NOT NULL,
    interception     INTEGER NOT NULL,
    yards_gained     REAL    NOT NULL
);
`

const insertStmt = `
INSERT INTO plays (
    play_id, down, distance, field_position, quarter, score_diff,
    pressure_applied, time_to_pressure, rushers, def_alignment,
    time_to_throw, completion, sack, interception, yards_gained
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Store wraps the sqlite handle holding one run's play table.
type Store struct {
	db *sql.DB
}

// Open creates an in-memory store with the plays schema.
func Open(ctx context.Context) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	// A memory database must not outlive its single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: schema: %w", ErrOpen, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertPlays bulk-loads the table inside one transaction.
func (s *Store) InsertPlays(ctx context.Context, t model.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrInsert, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return fmt.Errorf("%w: prepare: %w", ErrInsert, err)
	}
	defer stmt.Close()

	for _, p := range t {
		var timeToPressure any
		if p.PressureApplied {
			timeToPressure = p.TimeToPressure
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Down, p.Distance, p.FieldPosition, p.Quarter, p.ScoreDiff,
			boolInt(p.PressureApplied), timeToPressure, p.Rushers, string(p.Alignment),
			p.TimeToThrow, boolInt(p.Completion), boolInt(p.Sack), boolInt(p.Interception),
			p.YardsGained,
		); err != nil {
			return fmt.Errorf("%w: play %d: %w", ErrInsert, p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrInsert, err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
