package docstore

import (
	"context"
	"fmt"

	"career-portal-backend/internal/domain"

	"github.com/google/uuid"
)

type gateway struct {
	store domain.DocumentStore
}

// NewGateway exposes a DocumentStore through the per-user paths the
// usecases read and write.
func NewGateway(store domain.DocumentStore) domain.PersistenceGateway {
	return &gateway{store: store}
}

func (g *gateway) ReadAccount(ctx context.Context, uid string) (domain.Document, error) {
	path, err := domain.AccountPath(uid)
	if err != nil {
		return nil, err
	}
	return g.store.Get(ctx, path)
}

func (g *gateway) ReadProfile(ctx context.Context, uid string) (domain.Document, error) {
	path, err := domain.ProfilePath(uid)
	if err != nil {
		return nil, err
	}
	return g.store.Get(ctx, path)
}

func (g *gateway) WriteAccount(ctx context.Context, uid string, partial domain.Document) error {
	path, err := domain.AccountPath(uid)
	if err != nil {
		return err
	}
	return g.store.Merge(ctx, path, partial)
}

func (g *gateway) WriteProfile(ctx context.Context, uid string, partial domain.Document) error {
	path, err := domain.ProfilePath(uid)
	if err != nil {
		return err
	}
	return g.store.Merge(ctx, path, partial)
}

func (g *gateway) CreateResume(ctx context.Context, uid string, doc domain.Document) (string, error) {
	collection, err := domain.ResumeCollection(uid)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := g.store.Create(ctx, collection, id, doc); err != nil {
		return "", fmt.Errorf("create resume: %w", err)
	}
	return id, nil
}

func (g *gateway) ReadResume(ctx context.Context, uid, resumeID string) (domain.Document, error) {
	path, err := domain.ResumePath(uid, resumeID)
	if err != nil {
		return nil, err
	}
	return g.store.Get(ctx, path)
}

func (g *gateway) WriteResumeSection(ctx context.Context, uid, resumeID string, section domain.Document) error {
	path, err := domain.ResumePath(uid, resumeID)
	if err != nil {
		return err
	}
	existing, err := g.store.Get(ctx, path)
	if err != nil {
		return err
	}
	// Merge would recreate a deleted resume holding only this section.
	if existing == nil {
		return domain.ErrDocumentNotFound
	}
	return g.store.Merge(ctx, path, section)
}

func (g *gateway) ListResumes(ctx context.Context, uid string) ([]domain.StoredDocument, error) {
	collection, err := domain.ResumeCollection(uid)
	if err != nil {
		return nil, err
	}
	return g.store.List(ctx, collection)
}

func (g *gateway) DeleteResume(ctx context.Context, uid, resumeID string) error {
	path, err := domain.ResumePath(uid, resumeID)
	if err != nil {
		return err
	}
	return g.store.Delete(ctx, path)
}

func (g *gateway) ReadEmployer(ctx context.Context, uid string) (domain.Document, error) {
	path, err := domain.EmployerPath(uid)
	if err != nil {
		return nil, err
	}
	return g.store.Get(ctx, path)
}

func (g *gateway) WriteEmployer(ctx context.Context, uid string, partial domain.Document) error {
	path, err := domain.EmployerPath(uid)
	if err != nil {
		return err
	}
	return g.store.Merge(ctx, path, partial)
}
