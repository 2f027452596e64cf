package reconcile_test

import (
	"testing"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("Should prefer the primary key at top level", func(t *testing.T) {
		rec := domain.Document{
			"fullName":     "Top Level",
			"personalInfo": map[string]any{"fullName": "Nested"},
		}
		assert.Equal(t, "Top Level", reconcile.ResolveString(rec, "fullName"))
	})

	t.Run("Should fall back to the personalInfo container", func(t *testing.T) {
		rec := domain.Document{"personalInfo": map[string]any{"fullName": "Nested"}}
		assert.Equal(t, "Nested", reconcile.ResolveString(rec, "fullName", "displayName"))
	})

	t.Run("Should try legacy keys in order", func(t *testing.T) {
		rec := domain.Document{"name": "Third", "displayName": "Second"}
		assert.Equal(t, "Second", reconcile.ResolveString(rec, "fullName", "displayName", "name"))
	})

	t.Run("Should skip blank values", func(t *testing.T) {
		rec := domain.Document{"fullName": "   ", "name": "Ann"}
		assert.Equal(t, "Ann", reconcile.ResolveString(rec, "fullName", "name"))
	})

	t.Run("Should return the default when nothing matches", func(t *testing.T) {
		assert.Equal(t, "n/a", reconcile.Resolve(domain.Document{}, "x", []string{"y"}, "n/a"))
		assert.Equal(t, "", reconcile.ResolveString(nil, "x"))
	})

	t.Run("Should keep an explicit false over a legacy alias", func(t *testing.T) {
		rec := domain.Document{"current": false, "isCurrent": true}
		assert.False(t, reconcile.ResolveBool(rec, "current", "currentlyWorking", "isCurrent"))

		entry := reconcile.NormalizeExperience(domain.Document{"current": false, "currentlyWorking": true})
		assert.False(t, entry.Current)

		entry = reconcile.NormalizeExperience(domain.Document{"isCurrent": true})
		assert.True(t, entry.Current)
	})

	t.Run("Should follow dotted paths and render numbers", func(t *testing.T) {
		rec := domain.Document{"jobPreferences": map[string]any{"salaryMin": float64(50000)}}
		assert.Equal(t, "50000", reconcile.ResolveString(rec, "jobPreferences.salaryMin"))
	})
}

func TestCoerceList(t *testing.T) {
	blank := domain.EducationEntry{}

	t.Run("Edit policy yields one blank template for an empty list", func(t *testing.T) {
		out := reconcile.CoerceList([]any{}, reconcile.NormalizeEducation, blank, domain.EditPolicy)
		require.Len(t, out, 1)
		assert.Equal(t, blank, out[0])
	})

	t.Run("Display policy yields an empty list", func(t *testing.T) {
		out := reconcile.CoerceList([]any{}, reconcile.NormalizeEducation, blank, domain.DisplayPolicy)
		assert.NotNil(t, out)
		assert.Len(t, out, 0)
	})

	t.Run("Absent or malformed values are treated as empty", func(t *testing.T) {
		assert.Len(t, reconcile.CoerceList(nil, reconcile.NormalizeEducation, blank, domain.DisplayPolicy), 0)
		assert.Len(t, reconcile.CoerceList("oops", reconcile.NormalizeEducation, blank, domain.EditPolicy), 1)
		assert.Len(t, reconcile.CoerceList([]any{"x", 3}, reconcile.NormalizeEducation, blank, domain.DisplayPolicy), 0)
	})

	t.Run("Every sub-field is filled", func(t *testing.T) {
		out := reconcile.CoerceList([]any{map[string]any{"school": "MIT"}}, reconcile.NormalizeEducation, blank, domain.DisplayPolicy)
		require.Len(t, out, 1)
		assert.Equal(t, domain.EducationEntry{Institution: "MIT"}, out[0])
	})

	t.Run("Certification issuer maps to organization", func(t *testing.T) {
		raw := []any{map[string]any{
			"name":   "CKA",
			"issuer": "CNCF",
			"date":   "2023-04-01",
			"url":    "https://example.com/cred/1",
		}}
		out := reconcile.CoerceList(raw, reconcile.NormalizeCertification, domain.CertificationEntry{}, domain.DisplayPolicy)
		require.Len(t, out, 1)
		assert.Equal(t, "CNCF", out[0].Organization)
		assert.Equal(t, "2023-04-01", out[0].IssueDate)
		assert.Equal(t, "https://example.com/cred/1", out[0].CredentialID)
	})

	t.Run("Skills accept strings and objects", func(t *testing.T) {
		out := reconcile.CoerceStrings([]any{"Go", map[string]any{"name": "SQL"}, ""}, domain.DisplayPolicy)
		assert.Equal(t, []string{"Go", "SQL"}, out)
		assert.Equal(t, []string{""}, reconcile.CoerceStrings(nil, domain.EditPolicy))
	})
}

func TestDedupeSkills(t *testing.T) {
	out := reconcile.DedupeSkills([]string{"Go", " go ", "SQL", "", "Docker", "sql"})
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, out)
}

func TestMergeProfile(t *testing.T) {
	t.Run("Detailed fullName wins over displayName", func(t *testing.T) {
		for _, display := range []string{"", "Someone Else", "Ann"} {
			basic := domain.Document{"displayName": display}
			detailed := domain.Document{"personalInfo": map[string]any{"fullName": "Ann Brown"}}
			assert.Equal(t, "Ann Brown", reconcile.MergeProfile(basic, detailed).FullName)
		}
	})

	t.Run("Falls back to displayName without a detailed record", func(t *testing.T) {
		basic := domain.Document{"displayName": "Ann"}
		assert.Equal(t, "Ann", reconcile.MergeProfile(basic, nil).FullName)
	})

	t.Run("Basic only scenario", func(t *testing.T) {
		basic := domain.Document{"displayName": "Ann", "jobTitle": "Dev"}
		p := reconcile.MergeProfile(basic, nil)
		assert.Equal(t, "Ann", p.FullName)
		assert.Equal(t, "Dev", p.JobTitle)
		assert.Equal(t, []domain.EducationEntry{}, p.Education)
		assert.Equal(t, []domain.ExperienceEntry{}, p.Experience)
		assert.Equal(t, []string{}, p.Skills)
		assert.False(t, p.HasDetails)
	})

	t.Run("Desired job title wins over every other title", func(t *testing.T) {
		basic := domain.Document{"jobTitle": "Dev"}
		detailed := domain.Document{
			"personalInfo":   map[string]any{"fullName": "Ann B", "jobTitle": "Senior Dev"},
			"skills":         []any{"Go"},
			"jobPreferences": map[string]any{"desiredJobTitle": "Lead Dev"},
		}
		p := reconcile.MergeProfile(basic, detailed)
		assert.Equal(t, "Lead Dev", p.JobTitle)
		assert.Equal(t, "Ann B", p.FullName)
		assert.Equal(t, []string{"Go"}, p.Skills)
	})

	t.Run("Lists are all-or-nothing from the detailed record", func(t *testing.T) {
		basic := domain.Document{"displayName": "Ann", "skills": []any{"Ignored"}}
		detailed := domain.Document{"personalInfo": map[string]any{}}
		p := reconcile.MergeProfile(basic, detailed)
		assert.Equal(t, []string{}, p.Skills)
		assert.True(t, p.HasDetails)
		assert.Equal(t, "Ann", p.FullName)
	})

	t.Run("Edit variant fills blank templates", func(t *testing.T) {
		p := reconcile.MergeProfileForEdit(nil, nil)
		assert.Len(t, p.Education, 1)
		assert.Len(t, p.Experience, 1)
		assert.Len(t, p.Certifications, 1)
		assert.Equal(t, []string{""}, p.Skills)
	})

	t.Run("Neither record gives the empty profile", func(t *testing.T) {
		p := reconcile.MergeProfile(nil, nil)
		assert.Equal(t, domain.ResolvedProfile{
			Education:      []domain.EducationEntry{},
			Experience:     []domain.ExperienceEntry{},
			Certifications: []domain.CertificationEntry{},
			Skills:         []string{},
		}, p)
	})

	t.Run("Scalar fields merge field by field", func(t *testing.T) {
		basic := domain.Document{"email": "a@x.io", "phone": "+15550001", "location": "Berlin"}
		detailed := domain.Document{"phone": "+15550002", "personalInfo": map[string]any{"location": ""}}
		p := reconcile.MergeProfile(basic, detailed)
		assert.Equal(t, "a@x.io", p.Email)
		assert.Equal(t, "+15550002", p.Phone)
		assert.Equal(t, "Berlin", p.Location)
	})
}

func TestSynthesizeResume(t *testing.T) {
	t.Run("Splits the name on the first space", func(t *testing.T) {
		seed := reconcile.SynthesizeResume(domain.ResolvedProfile{FullName: "Jane Q Doe"})
		assert.Equal(t, "Jane", seed.Personal.FirstName)
		assert.Equal(t, "Q Doe", seed.Personal.LastName)
	})

	t.Run("Single token name has empty last name", func(t *testing.T) {
		seed := reconcile.SynthesizeResume(domain.ResolvedProfile{FullName: "Solo"})
		assert.Equal(t, "Solo", seed.Personal.FirstName)
		assert.Equal(t, "", seed.Personal.LastName)
	})

	t.Run("Maps profile fields and starts editor lists empty", func(t *testing.T) {
		seed := reconcile.SynthesizeResume(domain.ResolvedProfile{
			FullName:       "Ann Brown",
			JobTitle:       "Dev",
			Email:          "ann@example.com",
			Location:       "Lisbon",
			Summary:        "Builds things.",
			Skills:         []string{"Go", ""},
			JobPreferences: domain.JobPreferences{DesiredJobTitle: "Lead Dev"},
		})
		assert.Equal(t, "Lead Dev", seed.Personal.JobTitle)
		assert.Equal(t, "Lisbon", seed.Personal.Address)
		assert.Equal(t, "Builds things.", seed.Summary)
		assert.Equal(t, []string{"Go"}, seed.Skills)
		assert.Empty(t, seed.Experience)
		assert.Empty(t, seed.Education)
		assert.Empty(t, seed.Projects)
	})
}

func TestNormalizeResume(t *testing.T) {
	doc := domain.Document{
		"title":     "Backend",
		"firstName": "Flat",
		"skills":    []any{"Go", map[string]any{"name": "SQL", "rating": float64(9)}},
		"experience": []any{map[string]any{
			"position":    "Engineer",
			"company":     "Acme",
			"description": "Shipped it",
			"current":     true,
		}},
	}
	r := reconcile.NormalizeResume("r1", doc)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, domain.DefaultThemeColor, r.ThemeColor)
	assert.Equal(t, "Flat", r.Personal.FirstName)
	assert.Equal(t, []domain.ResumeSkill{{Name: "Go"}, {Name: "SQL", Rating: 5}}, r.Skills)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, "Engineer", r.Experience[0].Title)
	assert.Equal(t, "Acme", r.Experience[0].CompanyName)
	assert.True(t, r.Experience[0].CurrentlyWorking)
	assert.Equal(t, []domain.ResumeProject{}, r.Projects)
}
