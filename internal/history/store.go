// Package history persists past evaluations in a local SQLite database
// so a deal desk can review how a scenario was scored over time. The
// store records outputs only; nothing here feeds back into scoring.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/codrin-preda/gamemna/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS evaluations (
	id               TEXT PRIMARY KEY,
	created_at       TEXT NOT NULL,
	bidders          INTEGER NOT NULL,
	due_diligence    REAL NOT NULL,
	cultural_fit     REAL NOT NULL,
	score            INTEGER NOT NULL,
	risk_level       TEXT NOT NULL,
	recommendation   TEXT NOT NULL,
	drivers          TEXT NOT NULL,
	calibration_hash TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations (created_at);
`

// Record is one persisted evaluation.
type Record struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	Input           model.DealInput  `json:"input"`
	Report          model.RiskReport `json:"report"`
	CalibrationHash string           `json:"calibration_hash"`
}

// Store is a SQLite-backed evaluation history.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gamemna-history.db")
	}
	return filepath.Join(home, ".gamemna", "history.db")
}

// Open opens (or creates) the history database and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save persists one evaluation under the given ID. Callers pass the
// evaluation ID so the history row matches the audit log entry.
func (s *Store) Save(id string, in model.DealInput, rep model.RiskReport, calibrationHash string) error {
	drivers, err := json.Marshal(rep.Drivers)
	if err != nil {
		return fmt.Errorf("history: marshal drivers: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO evaluations
			(id, created_at, bidders, due_diligence, cultural_fit,
			 score, risk_level, recommendation, drivers, calibration_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		time.Now().UTC().Format(time.RFC3339Nano),
		in.Bidders, in.DueDiligence, in.CulturalFit,
		rep.Score, string(rep.Level), rep.Recommendation,
		string(drivers), calibrationHash,
	)
	if err != nil {
		return fmt.Errorf("history: insert evaluation: %w", err)
	}

	return nil
}

// Get returns a single evaluation by ID.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`
		SELECT id, created_at, bidders, due_diligence, cultural_fit,
		       score, risk_level, recommendation, drivers, calibration_hash
		FROM evaluations WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history: evaluation %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("history: get evaluation: %w", err)
	}
	return rec, nil
}

// List returns the most recent evaluations, newest first.
func (s *Store) List(limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, created_at, bidders, due_diligence, cultural_fit,
		       score, risk_level, recommendation, drivers, calibration_hash
		FROM evaluations ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list evaluations: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("history: scan evaluation: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate evaluations: %w", err)
	}

	return records, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*Record, error) {
	var (
		rec        Record
		createdAt  string
		level      string
		driversRaw string
	)

	err := sc.Scan(
		&rec.ID, &createdAt,
		&rec.Input.Bidders, &rec.Input.DueDiligence, &rec.Input.CulturalFit,
		&rec.Report.Score, &level, &rec.Report.Recommendation,
		&driversRaw, &rec.CalibrationHash,
	)
	if err != nil {
		return nil, err
	}

	rec.Report.Level = model.RiskLevel(level)

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	rec.CreatedAt = ts

	if err := json.Unmarshal([]byte(driversRaw), &rec.Report.Drivers); err != nil {
		return nil, fmt.Errorf("parse drivers: %w", err)
	}

	return &rec, nil
}
