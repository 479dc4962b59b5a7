// Package storage provides SQLite-based persistence for finished rallies.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only rally statistics are kept. Match scores live for one session and
// are never written.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-pong/internal/core"
)

// Store manages the SQLite database connection for the rally log.
type Store struct {
	db *sql.DB
}

// RallyRecord is one finished rally: the play between a kickoff and the goal that ended it.
type RallyRecord struct {
	ID        int64
	SessionID string // Process or SSH session that played it
	Variant   string // Registered game variant, e.g. "pong"
	Bounces   int    // Paddle bounces
	PeakSpeed float64
	Ticks     int64
	Conceded  string // Side that let the ball through: "left" or "right"
	CreatedAt time.Time
}

// NewRallyRecord builds the row for a rally reported by a game.
func NewRallyRecord(sessionID, variant string, r core.RallyReport) RallyRecord {
	conceded := "right"
	if r.Conceded == core.Player1 {
		conceded = "left"
	}
	return RallyRecord{
		SessionID: sessionID,
		Variant:   variant,
		Bounces:   r.Bounces,
		PeakSpeed: r.PeakSpeed,
		Ticks:     int64(r.Ticks),
		Conceded:  conceded,
	}
}

// RallyStats contains aggregated statistics for a variant.
type RallyStats struct {
	Variant     string
	Rallies     int
	MostBounces int
	AvgBounces  float64
	TopSpeed    float64
	TotalTicks  int64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rallies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			bounces INTEGER NOT NULL,
			peak_speed REAL NOT NULL,
			ticks INTEGER NOT NULL,
			conceded TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rallies_variant ON rallies(variant);
		CREATE INDEX IF NOT EXISTS idx_rallies_longest ON rallies(variant, bounces DESC, ticks DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRally records a finished rally.
// Returns the ID of the inserted record.
func (s *Store) SaveRally(r RallyRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rallies (session_id, variant, bounces, peak_speed, ticks, conceded)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Variant, r.Bounces, r.PeakSpeed, r.Ticks, r.Conceded,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save rally: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// LongestRallies retrieves the longest N rallies for the given variant.
// Results are ordered by bounces, then duration, descending.
func (s *Store) LongestRallies(variant string, limit int) ([]RallyRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, variant, bounces, peak_speed, ticks, conceded, created_at
		 FROM rallies
		 WHERE variant = ?
		 ORDER BY bounces DESC, ticks DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rallies: %w", err)
	}
	defer rows.Close()

	var records []RallyRecord
	for rows.Next() {
		var r RallyRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Variant, &r.Bounces, &r.PeakSpeed, &r.Ticks, &r.Conceded, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionRallies retrieves every rally played by a session, oldest first.
func (s *Store) SessionRallies(sessionID string) ([]RallyRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, variant, bounces, peak_speed, ticks, conceded, created_at
		 FROM rallies
		 WHERE session_id = ?
		 ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session rallies: %w", err)
	}
	defer rows.Close()

	var records []RallyRecord
	for rows.Next() {
		var r RallyRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Variant, &r.Bounces, &r.PeakSpeed, &r.Ticks, &r.Conceded, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RallyStats retrieves aggregated statistics for a variant.
// A variant with no rallies yields zero stats, not an error.
func (s *Store) RallyStats(variant string) (*RallyStats, error) {
	stats := &RallyStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(bounces), 0), COALESCE(AVG(bounces), 0),
		        COALESCE(MAX(peak_speed), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM rallies WHERE variant = ?`,
		variant,
	).Scan(&stats.Rallies, &stats.MostBounces, &stats.AvgBounces, &stats.TopSpeed, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get rally stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearRallies deletes all rallies for the given variant.
func (s *Store) ClearRallies(variant string) error {
	_, err := s.db.Exec("DELETE FROM rallies WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rallies: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
