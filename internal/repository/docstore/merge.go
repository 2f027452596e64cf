// Package docstore holds the storage-independent half of the document
// store: the merge-write rule and the per-user gateway built on top of any
// domain.DocumentStore.
package docstore

import (
	"career-portal-backend/internal/domain"
)

// Merge applies partial on top of base and returns the result. Nested
// objects are merged key by key and always come back as map[string]any, every other value (arrays included)
// replaces what was stored, and a nil value deletes the key. Neither
// argument is modified.
func Merge(base, partial domain.Document) domain.Document {
	out := Clone(base)
	if out == nil {
		out = domain.Document{}
	}
	for key, value := range partial {
		if value == nil {
			delete(out, key)
			continue
		}
		if patch, ok := asMap(value); ok {
			if current, ok := asMap(out[key]); ok {
				out[key] = map[string]any(Merge(current, patch))
				continue
			}
			out[key] = map[string]any(stripNils(patch))
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

// Clone deep-copies a document so callers never share nested maps or
// slices with the store.
func Clone(doc domain.Document) domain.Document {
	if doc == nil {
		return nil
	}
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case domain.Document:
		return Clone(t)
	case map[string]any:
		return map[string]any(Clone(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// stripNils drops deletion markers from an object that is being written
// fresh, since there is nothing underneath for them to delete.
func stripNils(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc))
	for k, v := range doc {
		if v == nil {
			continue
		}
		if m, ok := asMap(v); ok {
			out[k] = map[string]any(stripNils(m))
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func asMap(v any) (domain.Document, bool) {
	switch m := v.(type) {
	case domain.Document:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}
