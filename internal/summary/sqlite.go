package summary

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/google/uuid"
)

// SQLiteSink persists one row per emitted summary tuple, stamped with a
// per-run identifier so multiple concurrent runs' rows don't collide.
// Grounded on graphs/group_testing_sim.go's InitDB/SaveResult pair,
// generalized from one row per ablation result to one row per
// simulation snapshot.
type SQLiteSink struct {
	db    *sql.DB
	runID string
}

// NewSQLiteSink opens (or creates) the sqlite database at dbPath,
// ensures the summary_snapshots table exists, and mints one fresh run
// id that is stamped on every row this sink writes.
func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("summary: opening %s: %w", dbPath, err)
	}

	const createTable = `
	CREATE TABLE IF NOT EXISTS summary_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,

		sim_time REAL,
		n_entities INTEGER,
		n_follows INTEGER,
		n_tweets INTEGER,
		n_retweets INTEGER
	);
	`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("summary: creating table: %w", err)
	}

	return &SQLiteSink{db: db, runID: uuid.NewString()}, nil
}

// Emit inserts one row per snapshot.
func (s *SQLiteSink) Emit(snap Snapshot) error {
	const insert = `
	INSERT INTO summary_snapshots (run_id, sim_time, n_entities, n_follows, n_tweets, n_retweets)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	_, err := s.db.Exec(insert, s.runID, snap.Time, snap.NEntities, snap.NFollows, snap.NTweets, snap.NRetweets)
	return err
}

// RunID reports the identifier stamped into every row this sink has
// written.
func (s *SQLiteSink) RunID() string {
	return s.runID
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
