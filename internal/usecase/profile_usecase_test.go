package usecase_test

import (
	"net/http"
	"testing"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfile() *domain.DetailedProfileRecord {
	return &domain.DetailedProfileRecord{
		PersonalInfo: domain.PersonalInfo{
			FullName: "Jane Q Doe",
			JobTitle: "Developer",
			Email:    "jane@example.com",
			Phone:    "+1 555 123 4567",
			Location: "Austin",
			Summary:  "Builds things.",
		},
		Education: []domain.EducationEntry{
			{Institution: "UT Austin", Degree: "BSc", Field: "CS", StartDate: "2012-09", EndDate: "2016-06"},
			{}, // blank template row
		},
		Experience: []domain.ExperienceEntry{
			{Company: "Acme", Position: "Engineer", StartDate: "2016-07", Current: true},
		},
		Skills: []string{"Go", "go", " SQL ", ""},
		JobPreferences: domain.JobPreferences{
			DesiredJobTitle: "Lead Dev",
			JobType:         "full-time",
		},
	}
}

func TestSaveProfile(t *testing.T) {
	validate := validation.New()

	t.Run("Should save the profile and sync the account", func(t *testing.T) {
		gw := newGateway()
		uc := usecase.NewProfileUsecase(gw, validate)
		ctx := userCtx("u1")

		p, err := uc.SaveProfile(ctx, sampleProfile())
		require.NoError(t, err)
		assert.Equal(t, "Jane Q Doe", p.FullName)
		assert.Equal(t, "Lead Dev", p.JobTitle)
		assert.Equal(t, []string{"Go", "SQL"}, p.Skills)
		assert.Len(t, p.Education, 1)
		assert.True(t, p.ProfileComplete)

		acc, err := usecase.NewAccountUsecase(gw, nil, validate).GetAccount(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Jane Q Doe", acc.DisplayName)
		assert.Equal(t, "Lead Dev", acc.JobTitle)
		assert.Equal(t, "Austin", acc.Location)
		assert.True(t, acc.ProfileComplete)
		assert.False(t, acc.LastUpdated.IsZero())
	})

	t.Run("Should replace lists on a second save", func(t *testing.T) {
		gw := newGateway()
		uc := usecase.NewProfileUsecase(gw, validate)
		ctx := userCtx("u1")

		_, err := uc.SaveProfile(ctx, sampleProfile())
		require.NoError(t, err)

		rec := sampleProfile()
		rec.Experience = nil
		rec.Skills = []string{"Rust"}
		p, err := uc.SaveProfile(ctx, rec)
		require.NoError(t, err)
		assert.Empty(t, p.Experience)
		assert.Equal(t, []string{"Rust"}, p.Skills)

		stored, err := gw.ReadProfile(ctx, "u1")
		require.NoError(t, err)
		meta := stored["metadata"].(map[string]any)
		assert.NotNil(t, meta["createdAt"])
		assert.NotNil(t, meta["updatedAt"])
	})

	t.Run("Should reject an invalid date", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(newGateway(), validate)
		rec := sampleProfile()
		rec.Education[0].StartDate = "last spring"
		_, err := uc.SaveProfile(userCtx("u1"), rec)
		assertAppError(t, err, http.StatusBadRequest)
	})
}

func TestGetProfile(t *testing.T) {
	validate := validation.New()

	t.Run("Should fall back to the account for identity fields", func(t *testing.T) {
		gw := newGateway()
		ctx := userCtx("u1")
		require.NoError(t, gw.WriteAccount(ctx, "u1", domain.Document{
			"displayName": "Ann",
			"email":       "ann@example.com",
		}))

		uc := usecase.NewProfileUsecase(gw, validate)
		p, err := uc.GetProfile(ctx, domain.DisplayPolicy)
		require.NoError(t, err)
		assert.Equal(t, "Ann", p.FullName)
		assert.Equal(t, "ann@example.com", p.Email)
		assert.Empty(t, p.Education)
		assert.False(t, p.HasDetails)

		p, err = uc.GetProfile(ctx, domain.EditPolicy)
		require.NoError(t, err)
		assert.Len(t, p.Education, 1)
		assert.Len(t, p.Experience, 1)
		assert.Len(t, p.Certifications, 1)
	})

	t.Run("Should read legacy stored shapes", func(t *testing.T) {
		gw := newGateway()
		ctx := userCtx("u1")
		require.NoError(t, gw.WriteProfile(ctx, "u1", domain.Document{
			"name":   "Old Shape",
			"skills": "Go",
			"certifications": []any{
				map[string]any{"name": "CKA", "issuer": "CNCF"},
			},
		}))

		p, err := usecase.NewProfileUsecase(gw, validate).GetProfile(ctx, domain.DisplayPolicy)
		require.NoError(t, err)
		assert.Equal(t, "Old Shape", p.FullName)
		require.Len(t, p.Certifications, 1)
		assert.Equal(t, "CNCF", p.Certifications[0].Organization)
	})
}

func TestProfileListEdits(t *testing.T) {
	validate := validation.New()
	gw := newGateway()
	uc := usecase.NewProfileUsecase(gw, validate)
	ctx := userCtx("u1")

	_, err := uc.SaveProfile(ctx, sampleProfile())
	require.NoError(t, err)

	t.Run("Should append a new skill", func(t *testing.T) {
		p, err := uc.AddSkill(ctx, "Kubernetes")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go", "SQL", "Kubernetes"}, p.Skills)
	})

	t.Run("Should refuse a duplicate skill", func(t *testing.T) {
		_, err := uc.AddSkill(ctx, "kubernetes")
		assertAppError(t, err, http.StatusConflict)
	})

	t.Run("Should refuse a blank skill", func(t *testing.T) {
		_, err := uc.AddSkill(ctx, "   ")
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should remove an entry by index", func(t *testing.T) {
		p, err := uc.RemoveEntry(ctx, domain.ListSkills, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"SQL", "Kubernetes"}, p.Skills)

		p, err = uc.RemoveEntry(ctx, domain.ListExperience, 0)
		require.NoError(t, err)
		assert.Empty(t, p.Experience)
		// Other fields survive list writes
		assert.Equal(t, "Jane Q Doe", p.FullName)
		assert.Len(t, p.Education, 1)
	})

	t.Run("Should answer 404 for an index out of range", func(t *testing.T) {
		_, err := uc.RemoveEntry(ctx, domain.ListEducation, 5)
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("Should reject an unknown list", func(t *testing.T) {
		_, err := uc.RemoveEntry(ctx, domain.ProfileList("hobbies"), 0)
		assertAppError(t, err, http.StatusBadRequest)
	})
}
