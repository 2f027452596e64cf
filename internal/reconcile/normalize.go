// Package reconcile turns stored account, profile and resume documents into
// the shapes the API works with. Every function here is pure: callers read
// documents, pass them in, and write the results back themselves.
package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"career-portal-backend/internal/domain"
)

// LegacyContainers are nested objects that older documents kept identity
// fields in. A primary key is looked up inside each of them after the top
// level and before any legacy key.
var LegacyContainers = []string{"personalInfo"}

// Resolve returns the first present, non-empty value for a field. A stored
// boolean always counts as present. Sources are checked in order: primary
// key at the top level, primary key inside each legacy container, then each
// legacy key. Keys may be dotted paths ("jobPreferences.desiredJobTitle").
// def is returned when nothing matches.
func Resolve(rec domain.Document, primary string, legacy []string, def any) any {
	if rec == nil {
		return def
	}
	if v, ok := present(lookup(rec, primary)); ok {
		return v
	}
	for _, container := range LegacyContainers {
		sub, ok := asMap(rec[container])
		if !ok {
			continue
		}
		if v, ok := present(lookup(sub, primary)); ok {
			return v
		}
	}
	for _, key := range legacy {
		if v, ok := present(lookup(rec, key)); ok {
			return v
		}
	}
	return def
}

// ResolveString resolves a field and renders it as a string.
func ResolveString(rec domain.Document, primary string, legacy ...string) string {
	return toString(Resolve(rec, primary, legacy, ""))
}

// ResolveBool resolves a field holding a flag; "true" strings count.
func ResolveBool(rec domain.Document, primary string, legacy ...string) bool {
	switch v := Resolve(rec, primary, legacy, false).(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(v))
		return b
	}
	return false
}

// ResolveInt resolves a numeric field; unparsable values give 0.
func ResolveInt(rec domain.Document, primary string, legacy ...string) int {
	switch v := Resolve(rec, primary, legacy, 0).(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

// ResolveTime resolves an RFC 3339 timestamp; the zero time when absent.
func ResolveTime(rec domain.Document, primary string, legacy ...string) time.Time {
	switch v := Resolve(rec, primary, legacy, nil).(type) {
	case time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(v)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sub returns the nested object stored under the first key that holds one.
func Sub(rec domain.Document, keys ...string) domain.Document {
	for _, key := range keys {
		if m, ok := asMap(lookup(rec, key)); ok {
			return m
		}
	}
	return nil
}

func lookup(rec domain.Document, path string) any {
	var cur any = rec
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}

func present(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, false
		}
		return strings.TrimSpace(t), true
	case bool:
		// An explicit false is a value; it must not fall through to an alias
		return t, true
	case []any:
		return t, len(t) > 0
	case []string:
		return t, len(t) > 0
	case map[string]any:
		return t, len(t) > 0
	case domain.Document:
		return t, len(t) > 0
	}
	return v, true
}

func asMap(v any) (domain.Document, bool) {
	switch m := v.(type) {
	case domain.Document:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
