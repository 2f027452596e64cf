package memory

import (
	"context"
	"sync"
	"time"

	"career-portal-backend/internal/domain"
)

type JobSearchRepository struct {
	mu      sync.Mutex
	nextID  int64
	records []domain.JobSearchRecord
}

func NewJobSearchRepository() *JobSearchRepository {
	return &JobSearchRepository{}
}

func (r *JobSearchRepository) Record(_ context.Context, rec *domain.JobSearchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rec.ID = r.nextID
	rec.CreatedAt = time.Now().UTC()
	stored := *rec
	stored.Sites = append([]string(nil), rec.Sites...)
	r.records = append(r.records, stored)
	return nil
}

func (r *JobSearchRepository) ListRecent(_ context.Context, userID string, limit int) ([]domain.JobSearchRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.JobSearchRecord, 0)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}
