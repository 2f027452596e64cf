package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/repository/docstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// documentStore keeps every document as one JSONB row keyed by
// (collection, id). Merge writes lock the row so two requests from the
// same user cannot lose each other's fields.
type documentStore struct {
	db *pgxpool.Pool
}

func NewDocumentStore(db *pgxpool.Pool) (domain.DocumentStore, error) {
	s := &documentStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, fmt.Errorf("document schema: %w", err)
	}
	return s, nil
}

func (s *documentStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	data JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (collection, id)
);
`)
	return err
}

func (s *documentStore) Get(ctx context.Context, path string) (domain.Document, error) {
	collection, id := domain.SplitPath(path)

	var raw []byte
	err := s.db.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return decodeDocument(raw)
}

func (s *documentStore) Merge(ctx context.Context, path string, partial domain.Document) error {
	collection, id := domain.SplitPath(path)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2 FOR UPDATE`,
		collection, id,
	).Scan(&raw)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to lock document: %w", err)
	}

	var current domain.Document
	if raw != nil {
		if current, err = decodeDocument(raw); err != nil {
			return err
		}
	}

	merged, err := json.Marshal(docstore.Merge(current, partial))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)
		ON CONFLICT (collection, id) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		collection, id, string(merged), now,
	)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *documentStore) Create(ctx context.Context, collection, id string, doc domain.Document) error {
	raw, err := json.Marshal(docstore.Merge(nil, doc))
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = s.db.Exec(ctx, `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $4)`,
		collection, id, string(raw), now,
	)
	return err
}

func (s *documentStore) List(ctx context.Context, collection string) ([]domain.StoredDocument, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, data, created_at, updated_at
		FROM documents
		WHERE collection = $1
		ORDER BY id`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.StoredDocument, 0)
	for rows.Next() {
		var (
			d   domain.StoredDocument
			raw []byte
		)
		if err := rows.Scan(&d.ID, &raw, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if d.Data, err = decodeDocument(raw); err != nil {
			return nil, err
		}
		d.Path = collection + "/" + d.ID
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *documentStore) Delete(ctx context.Context, path string) error {
	collection, id := domain.SplitPath(path)
	tag, err := s.db.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

func decodeDocument(raw []byte) (domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("corrupt document: %w", err)
	}
	return doc, nil
}
