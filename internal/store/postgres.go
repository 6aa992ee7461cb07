package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/scoutline/leadscout/internal/db"
	"github.com/scoutline/leadscout/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_run": `INSERT INTO runs (id, query, intelligence, leads, total_count, report, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"get_run":    `SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs WHERE id = $1`,
	"list_runs":  `SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Tests use this with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need
// direct query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	query        TEXT NOT NULL,
	intelligence JSONB NOT NULL,
	leads        JSONB NOT NULL,
	total_count  INTEGER NOT NULL DEFAULT 0,
	report       JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_query ON runs(query);

CREATE TABLE IF NOT EXISTS lead_archive (
	company_name TEXT NOT NULL,
	role         TEXT NOT NULL,
	location     TEXT NOT NULL,
	source       TEXT NOT NULL,
	website_url  TEXT,
	score        DOUBLE PRECISION NOT NULL,
	confidence   DOUBLE PRECISION NOT NULL,
	last_run_id  TEXT NOT NULL,
	last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (company_name, role, location)
);

CREATE INDEX IF NOT EXISTS idx_lead_archive_score ON lead_archive(score DESC);
`

var leadArchiveColumns = []string{
	"company_name", "role", "location", "source",
	"website_url", "score", "confidence", "last_run_id", "last_seen_at",
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	intelJSON, err := json.Marshal(run.Intelligence)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal intelligence")
	}
	leadsJSON, err := json.Marshal(run.Leads)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal leads")
	}
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal report")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO runs (id, query, intelligence, leads, total_count, report, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		run.ID, run.Query, intelJSON, leadsJSON, run.TotalCount, reportJSON, run.CreatedAt,
	)
	if err != nil {
		return eris.Wrap(err, "postgres: insert run")
	}

	if err := s.archiveLeads(ctx, run); err != nil {
		return err
	}
	return nil
}

// archiveLeads upserts the run's leads into the cross-run archive. The
// archive keeps the latest sighting per (company, role, location).
func (s *PostgresStore) archiveLeads(ctx context.Context, run *model.Run) error {
	if len(run.Leads) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(run.Leads))
	for _, lead := range run.Leads {
		rows = append(rows, []any{
			lead.CompanyName, lead.Role, lead.Location, lead.Source,
			lead.WebsiteURL, lead.Score, lead.Confidence, run.ID, run.CreatedAt,
		})
	}

	_, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "lead_archive",
		Columns:      leadArchiveColumns,
		ConflictKeys: []string{"company_name", "role", "location"},
	}, rows)
	if err != nil {
		return eris.Wrap(err, "postgres: archive leads")
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs WHERE id = $1`,
		runID,
	)
	run, err := scanRun(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, query, intelligence, leads, total_count, report, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate runs")
	}
	return runs, nil
}

// scanRun decodes one runs row. pgx.Row and pgx.Rows share Scan.
func scanRun(row pgx.Row) (*model.Run, error) {
	var r model.Run
	var intelJSON, leadsJSON, reportJSON []byte

	if err := row.Scan(&r.ID, &r.Query, &intelJSON, &leadsJSON, &r.TotalCount, &reportJSON, &r.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(intelJSON, &r.Intelligence); err != nil {
		return nil, eris.Wrap(err, "unmarshal intelligence")
	}
	if err := json.Unmarshal(leadsJSON, &r.Leads); err != nil {
		return nil, eris.Wrap(err, "unmarshal leads")
	}
	if err := json.Unmarshal(reportJSON, &r.Report); err != nil {
		return nil, eris.Wrap(err, "unmarshal report")
	}
	return &r, nil
}
