package domain

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// Document is a schemaless stored record. Stored data carries several
// historical shapes at once, so reads go through the field normalizer
// instead of being decoded straight into structs.
type Document map[string]any

// ErrDocumentNotFound is returned by Delete when nothing is stored at a path.
var ErrDocumentNotFound = errors.New("document not found")

// ErrInvalidPathSegment is returned for a uid or document id that is not a
// single plain path segment.
var ErrInvalidPathSegment = errors.New("invalid document path segment")

var segmentPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidSegment reports whether id can be placed in a document path as is.
func ValidSegment(id string) bool {
	return segmentPattern.MatchString(id)
}

// StoredDocument is a document together with its storage metadata.
type StoredDocument struct {
	ID        string
	Path      string
	Data      Document
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore is a hierarchical key/document store with merge-write
// semantics: nested objects merge, scalars and arrays are replaced, a nil
// value removes the key.
type DocumentStore interface {
	// Get returns (nil, nil) when nothing is stored at path.
	Get(ctx context.Context, path string) (Document, error)
	// Merge creates the document on first write.
	Merge(ctx context.Context, path string, partial Document) error
	Create(ctx context.Context, collection, id string, doc Document) error
	List(ctx context.Context, collection string) ([]StoredDocument, error)
	Delete(ctx context.Context, path string) error
}

// Path helpers for the per-user document tree. Each one refuses ids that
// would resolve into another document.

func AccountPath(uid string) (string, error) {
	if !ValidSegment(uid) {
		return "", ErrInvalidPathSegment
	}
	return "users/" + uid, nil
}

func ProfilePath(uid string) (string, error) {
	account, err := AccountPath(uid)
	if err != nil {
		return "", err
	}
	return account + "/profile/details", nil
}

func ResumeCollection(uid string) (string, error) {
	account, err := AccountPath(uid)
	if err != nil {
		return "", err
	}
	return account + "/resumes", nil
}

func ResumePath(uid, resumeID string) (string, error) {
	collection, err := ResumeCollection(uid)
	if err != nil {
		return "", err
	}
	if !ValidSegment(resumeID) {
		return "", ErrInvalidPathSegment
	}
	return collection + "/" + resumeID, nil
}

func EmployerPath(uid string) (string, error) {
	if !ValidSegment(uid) {
		return "", ErrInvalidPathSegment
	}
	return "employers/" + uid, nil
}

// SplitPath returns the collection and id of a document path.
func SplitPath(path string) (collection, id string) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}

// ToDocument converts a tagged struct into a Document through its JSON form.
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// PersistenceGateway is the per-user read/write contract the usecases work
// against. Reads return (nil, nil) for documents that do not exist yet, and
// every write merges: fields missing from partial are kept, arrays in
// partial replace the stored array. A uid or resume id that is not a single
// path segment fails with ErrInvalidPathSegment before the store is touched.
type PersistenceGateway interface {
	ReadAccount(ctx context.Context, uid string) (Document, error)
	ReadProfile(ctx context.Context, uid string) (Document, error)
	WriteAccount(ctx context.Context, uid string, partial Document) error
	WriteProfile(ctx context.Context, uid string, partial Document) error
	// CreateResume stores doc under a fresh id and returns that id.
	CreateResume(ctx context.Context, uid string, doc Document) (string, error)
	ReadResume(ctx context.Context, uid, resumeID string) (Document, error)
	// WriteResumeSection returns ErrDocumentNotFound when the resume is gone.
	WriteResumeSection(ctx context.Context, uid, resumeID string, section Document) error
	ListResumes(ctx context.Context, uid string) ([]StoredDocument, error)
	DeleteResume(ctx context.Context, uid, resumeID string) error
	ReadEmployer(ctx context.Context, uid string) (Document, error)
	WriteEmployer(ctx context.Context, uid string, partial Document) error
}
