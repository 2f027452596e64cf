// Package memory is a process-local DocumentStore for tests and for running
// the API without a database (STORE_DRIVER=memory).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/repository/docstore"
)

type entry struct {
	data      domain.Document
	createdAt time.Time
	updatedAt time.Time
}

type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]*entry
	now  func() time.Time
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]*entry),
		now:  time.Now,
	}
}

func (s *DocumentStore) Get(_ context.Context, path string) (domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.docs[path]
	if !ok {
		return nil, nil
	}
	return docstore.Clone(e.data), nil
}

func (s *DocumentStore) Merge(_ context.Context, path string, partial domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.docs[path]
	if !ok {
		s.docs[path] = &entry{data: docstore.Merge(nil, partial), createdAt: now, updatedAt: now}
		return nil
	}
	e.data = docstore.Merge(e.data, partial)
	e.updatedAt = now
	return nil
}

func (s *DocumentStore) Create(_ context.Context, collection, id string, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.docs[collection+"/"+id] = &entry{data: docstore.Merge(nil, doc), createdAt: now, updatedAt: now}
	return nil
}

// List returns the direct children of collection ordered by path.
func (s *DocumentStore) List(_ context.Context, collection string) ([]domain.StoredDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StoredDocument, 0)
	for path, e := range s.docs {
		parent, id := domain.SplitPath(path)
		if parent != collection {
			continue
		}
		out = append(out, domain.StoredDocument{
			ID:        id,
			Path:      path,
			Data:      docstore.Clone(e.data),
			CreatedAt: e.createdAt,
			UpdatedAt: e.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *DocumentStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[path]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(s.docs, path)
	return nil
}
