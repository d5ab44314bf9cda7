package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hustlex/hustlexbot/core/logger"
)

// Repository lists jobs for the jobs browser.
type Repository interface {
	Latest(ctx context.Context, limit int) ([]Job, error)
}

// PostgresRepository reads jobs from the jobs table.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository returns a repository backed by db.
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const latestQuery = `
SELECT id, title, company, category, job_type, job_sector, city, budget, created_at
FROM jobs
WHERE approved AND is_active AND status = 'active' AND visibility = 'public'
ORDER BY created_at DESC
LIMIT $1`

// Latest returns up to limit approved, active, public jobs, newest first.
func (r *PostgresRepository) Latest(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		return nil, nil
	}
	start := time.Now()
	var out []Job
	if err := r.db.SelectContext(ctx, &out, latestQuery, limit); err != nil {
		return nil, fmt.Errorf("jobs: select latest: %w", err)
	}
	logger.Debug(ctx, "db", "jobs.latest",
		slog.Int("rows", len(out)),
		slog.Duration("duration", logger.Took(start)),
	)
	return out, nil
}

// Count returns the number of rows in the jobs table.
func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM jobs`); err != nil {
		return 0, fmt.Errorf("jobs: count: %w", err)
	}
	return n, nil
}

type insertRow struct {
	Job
	Status     string `db:"status"`
	Visibility string `db:"visibility"`
}

const insertQuery = `
INSERT INTO jobs (id, title, company, category, job_type, job_sector, city, budget,
                  approved, is_active, status, visibility, created_at)
VALUES (:id, :title, :company, :category, :job_type, :job_sector, :city, :budget,
        TRUE, TRUE, :status, :visibility, :created_at)`

// InsertPublished stores jobs as approved, active and public.
func (r *PostgresRepository) InsertPublished(ctx context.Context, jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	rows := make([]insertRow, len(jobs))
	for i, j := range jobs {
		rows[i] = insertRow{Job: j, Status: "active", Visibility: "public"}
	}
	if _, err := r.db.NamedExecContext(ctx, insertQuery, rows); err != nil {
		return fmt.Errorf("jobs: insert: %w", err)
	}
	return nil
}
