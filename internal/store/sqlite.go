package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/scoutline/leadscout/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	query        TEXT NOT NULL,
	intelligence TEXT NOT NULL,
	leads        TEXT NOT NULL,
	total_count  INTEGER NOT NULL DEFAULT 0,
	report       TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_query ON runs(query);

CREATE TABLE IF NOT EXISTS lead_archive (
	company_name TEXT NOT NULL,
	role         TEXT NOT NULL,
	location     TEXT NOT NULL,
	source       TEXT NOT NULL,
	website_url  TEXT,
	score        REAL NOT NULL,
	confidence   REAL NOT NULL,
	last_run_id  TEXT NOT NULL,
	last_seen_at DATETIME NOT NULL,
	PRIMARY KEY (company_name, role, location)
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	intelJSON, err := json.Marshal(run.Intelligence)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal intelligence")
	}
	leadsJSON, err := json.Marshal(run.Leads)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal leads")
	}
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal report")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, intelligence, leads, total_count, report, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, string(intelJSON), string(leadsJSON), run.TotalCount, string(reportJSON), run.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert run")
	}

	for _, lead := range run.Leads {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO lead_archive (company_name, role, location, source, website_url, score, confidence, last_run_id, last_seen_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT (company_name, role, location) DO UPDATE SET
			   source = excluded.source,
			   website_url = excluded.website_url,
			   score = excluded.score,
			   confidence = excluded.confidence,
			   last_run_id = excluded.last_run_id,
			   last_seen_at = excluded.last_seen_at`,
			lead.CompanyName, lead.Role, lead.Location, lead.Source,
			lead.WebsiteURL, lead.Score, lead.Confidence, run.ID, run.CreatedAt,
		)
		if err != nil {
			return eris.Wrap(err, "sqlite: archive lead")
		}
	}

	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "sqlite: commit")
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs WHERE id = ?`,
		runID,
	)
	run, err := scanSQLiteRun(row.Scan)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanSQLiteRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}

func scanSQLiteRun(scan func(dest ...any) error) (*model.Run, error) {
	var r model.Run
	var intelJSON, leadsJSON, reportJSON string

	if err := scan(&r.ID, &r.Query, &intelJSON, &leadsJSON, &r.TotalCount, &reportJSON, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(intelJSON), &r.Intelligence); err != nil {
		return nil, eris.Wrap(err, "unmarshal intelligence")
	}
	if err := json.Unmarshal([]byte(leadsJSON), &r.Leads); err != nil {
		return nil, eris.Wrap(err, "unmarshal leads")
	}
	if err := json.Unmarshal([]byte(reportJSON), &r.Report); err != nil {
		return nil, eris.Wrap(err, "unmarshal report")
	}
	return &r, nil
}
