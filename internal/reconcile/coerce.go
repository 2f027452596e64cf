package reconcile

import (
	"strings"

	"career-portal-backend/internal/domain"
)

// CoerceList turns a stored array into normalised entries. Elements that are
// not objects are dropped. When nothing usable remains the list policy
// decides: display gives an empty list, edit gives one blank entry.
func CoerceList[T any](value any, normalize func(domain.Document) T, blank T, policy domain.ListPolicy) []T {
	items := asSlice(value)
	out := make([]T, 0, len(items))
	for _, item := range items {
		doc, ok := asMap(item)
		if !ok {
			continue
		}
		out = append(out, normalize(doc))
	}
	if len(out) == 0 {
		return emptyList(blank, policy)
	}
	return out
}

// CoerceStrings is CoerceList for lists of plain strings such as skills.
// Objects are accepted too and reduced to their name.
func CoerceStrings(value any, policy domain.ListPolicy) []string {
	items := asSlice(value)
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		switch t := item.(type) {
		case string:
			s = strings.TrimSpace(t)
		default:
			if doc, ok := asMap(item); ok {
				s = ResolveString(doc, "name", legacyKeys(KindResumeSkill, "name")...)
			}
		}
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return emptyList("", policy)
	}
	return out
}

// DedupeSkills trims skills, drops blanks and removes case-insensitive
// duplicates keeping the first spelling.
func DedupeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func emptyList[T any](blank T, policy domain.ListPolicy) []T {
	if policy == domain.EditPolicy {
		return []T{blank}
	}
	return []T{}
}

func asSlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	case []domain.Document:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out
	}
	return nil
}

// Entry normalisers. Missing sub-fields come back as "" or false.

func NormalizeEducation(doc domain.Document) domain.EducationEntry {
	f := fieldsOf(doc, KindEducation)
	return domain.EducationEntry{
		Institution: f.str("institution"),
		Degree:      f.str("degree"),
		Field:       f.str("field"),
		StartDate:   f.str("startDate"),
		EndDate:     f.str("endDate"),
		Description: f.str("description"),
	}
}

func NormalizeExperience(doc domain.Document) domain.ExperienceEntry {
	f := fieldsOf(doc, KindExperience)
	return domain.ExperienceEntry{
		Company:     f.str("company"),
		Position:    f.str("position"),
		Location:    f.str("location"),
		StartDate:   f.str("startDate"),
		EndDate:     f.str("endDate"),
		Current:     f.flag("current"),
		Description: f.str("description"),
	}
}

func NormalizeCertification(doc domain.Document) domain.CertificationEntry {
	f := fieldsOf(doc, KindCertification)
	return domain.CertificationEntry{
		Name:         f.str("name"),
		Organization: f.str("organization"),
		IssueDate:    f.str("issueDate"),
		ExpiryDate:   f.str("expiryDate"),
		CredentialID: f.str("credentialID"),
		Description:  f.str("description"),
	}
}

// fields binds a document to its alias table entry.
type fields struct {
	doc  domain.Document
	kind Kind
}

func fieldsOf(doc domain.Document, kind Kind) fields {
	return fields{doc: doc, kind: kind}
}

func (f fields) str(key string) string {
	return ResolveString(f.doc, key, legacyKeys(f.kind, key)...)
}

func (f fields) flag(key string) bool {
	return ResolveBool(f.doc, key, legacyKeys(f.kind, key)...)
}

func (f fields) num(key string) int {
	return ResolveInt(f.doc, key, legacyKeys(f.kind, key)...)
}
