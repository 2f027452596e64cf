package postgres

import (
	"context"

	"career-portal-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobSearchRepo struct {
	db *pgxpool.Pool
}

func NewJobSearchRepository(db *pgxpool.Pool) (domain.JobSearchRepository, error) {
	r := &jobSearchRepo{db: db}
	if _, err := db.Exec(context.Background(), `
CREATE TABLE IF NOT EXISTS job_searches (
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	sites TEXT[] NOT NULL DEFAULT '{}',
	search_term TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	result_count INT NOT NULL DEFAULT 0,
	fallback BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_job_searches_user ON job_searches (user_id, created_at DESC);
`); err != nil {
		return nil, err
	}
	return r, nil
}

// Record stores a finished search
func (r *jobSearchRepo) Record(ctx context.Context, rec *domain.JobSearchRecord) error {
	query := `
		INSERT INTO job_searches (user_id, sites, search_term, location, result_count, fallback)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		rec.UserID, pq.Array(rec.Sites), rec.SearchTerm, rec.Location, rec.ResultCount, rec.Fallback,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// ListRecent returns the newest searches of a user first
func (r *jobSearchRepo) ListRecent(ctx context.Context, userID string, limit int) ([]domain.JobSearchRecord, error) {
	query := `
		SELECT id, user_id, sites, search_term, location, result_count, fallback, created_at
		FROM job_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.JobSearchRecord, 0)
	for rows.Next() {
		var rec domain.JobSearchRecord
		if err := rows.Scan(
			&rec.ID, &rec.UserID, pq.Array(&rec.Sites), &rec.SearchTerm,
			&rec.Location, &rec.ResultCount, &rec.Fallback, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
