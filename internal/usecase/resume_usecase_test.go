package usecase_test

import (
	"bytes"
	"net/http"
	"testing"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/usecase"
	"career-portal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCreateResume(t *testing.T) {
	validate := validation.New()

	t.Run("Should seed a resume from the profile", func(t *testing.T) {
		gw := newGateway()
		ctx := userCtx("u1")
		_, err := usecase.NewProfileUsecase(gw, validate).SaveProfile(ctx, sampleProfile())
		require.NoError(t, err)

		uc := usecase.NewResumeUsecase(gw, validate)
		rec, err := uc.CreateResume(ctx, &domain.CreateResumeRequest{Title: "Backend", FromProfile: true})
		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)
		assert.Equal(t, domain.DefaultThemeColor, rec.ThemeColor)
		assert.Equal(t, "Jane", rec.Personal.FirstName)
		assert.Equal(t, "Q Doe", rec.Personal.LastName)
		assert.Equal(t, "Lead Dev", rec.Personal.JobTitle)
		assert.Equal(t, "Austin", rec.Personal.Address)
		assert.Equal(t, []domain.ResumeSkill{{Name: "Go"}, {Name: "SQL"}}, rec.Skills)
		assert.Empty(t, rec.Experience)

		got, err := uc.GetResume(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, rec.Personal, got.Personal)
		assert.Equal(t, "Builds things.", got.Summary)
	})

	t.Run("Should create a blank resume", func(t *testing.T) {
		uc := usecase.NewResumeUsecase(newGateway(), validate)
		rec, err := uc.CreateResume(userCtx("u1"), &domain.CreateResumeRequest{Title: "Blank", ThemeColor: "#123456"})
		require.NoError(t, err)
		assert.Equal(t, "#123456", rec.ThemeColor)
		assert.Empty(t, rec.Personal.FirstName)
		assert.Empty(t, rec.Skills)
	})

	t.Run("Should require a title", func(t *testing.T) {
		uc := usecase.NewResumeUsecase(newGateway(), validate)
		_, err := uc.CreateResume(userCtx("u1"), &domain.CreateResumeRequest{})
		assertAppError(t, err, http.StatusBadRequest)
	})
}

func TestResumeSections(t *testing.T) {
	validate := validation.New()
	gw := newGateway()
	uc := usecase.NewResumeUsecase(gw, validate)
	ctx := userCtx("u1")

	rec, err := uc.CreateResume(ctx, &domain.CreateResumeRequest{Title: "Main"})
	require.NoError(t, err)

	t.Run("Should write one section without clobbering another", func(t *testing.T) {
		_, err := uc.UpdateSection(ctx, rec.ID, domain.SectionPersonal,
			[]byte(`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com"}`))
		require.NoError(t, err)

		got, err := uc.UpdateSection(ctx, rec.ID, domain.SectionExperience,
			[]byte(`[{"title":"Engineer","companyName":"Acme","startDate":"2020-01","currentlyWorking":true},{}]`))
		require.NoError(t, err)

		assert.Equal(t, "Jane", got.Personal.FirstName)
		assert.Equal(t, "jane@example.com", got.Personal.Email)
		require.Len(t, got.Experience, 1)
		assert.Equal(t, "Acme", got.Experience[0].CompanyName)
		assert.Equal(t, "Main", got.Title)
	})

	t.Run("Should dedupe skills by name", func(t *testing.T) {
		got, err := uc.UpdateSection(ctx, rec.ID, domain.SectionSkills,
			[]byte(`[{"name":"Go","rating":4},{"name":"go","rating":1},{"name":"","rating":3}]`))
		require.NoError(t, err)
		assert.Equal(t, []domain.ResumeSkill{{Name: "Go", Rating: 4}}, got.Skills)
	})

	t.Run("Should update meta and summary", func(t *testing.T) {
		_, err := uc.UpdateSection(ctx, rec.ID, domain.SectionMeta, []byte(`{"title":"Renamed","themeColor":"#000"}`))
		require.NoError(t, err)
		got, err := uc.UpdateSection(ctx, rec.ID, domain.SectionSummary, []byte(`{"summary":" Ten years of Go. "}`))
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, "#000", got.ThemeColor)
		assert.Equal(t, "Ten years of Go.", got.Summary)
	})

	t.Run("Should reject bad payloads", func(t *testing.T) {
		_, err := uc.UpdateSection(ctx, rec.ID, domain.SectionSkills, []byte(`{"name":"Go"}`))
		assertAppError(t, err, http.StatusBadRequest)

		_, err = uc.UpdateSection(ctx, rec.ID, domain.SectionSkills, []byte(`[{"name":"Go","rating":9}]`))
		assertAppError(t, err, http.StatusBadRequest)

		_, err = uc.UpdateSection(ctx, rec.ID, domain.ResumeSection("photos"), []byte(`[]`))
		assertAppError(t, err, http.StatusBadRequest)
	})

	t.Run("Should answer 404 for a missing resume", func(t *testing.T) {
		_, err := uc.UpdateSection(ctx, "missing", domain.SectionSummary, []byte(`{"summary":"x"}`))
		assertAppError(t, err, http.StatusNotFound)

		_, err = uc.GetResume(ctx, "missing")
		assertAppError(t, err, http.StatusNotFound)
	})

	t.Run("Should keep resumes private to their owner", func(t *testing.T) {
		_, err := uc.GetResume(userCtx("u2"), rec.ID)
		assertAppError(t, err, http.StatusNotFound)
	})
}

func TestListAndDeleteResumes(t *testing.T) {
	validate := validation.New()
	uc := usecase.NewResumeUsecase(newGateway(), validate)
	ctx := userCtx("u1")

	first, err := uc.CreateResume(ctx, &domain.CreateResumeRequest{Title: "First"})
	require.NoError(t, err)
	second, err := uc.CreateResume(ctx, &domain.CreateResumeRequest{Title: "Second"})
	require.NoError(t, err)

	// Editing the first one moves it to the top
	_, err = uc.UpdateSection(ctx, first.ID, domain.SectionSummary, []byte(`{"summary":"edited"}`))
	require.NoError(t, err)

	list, err := uc.ListResumes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, uc.DeleteResume(ctx, second.ID))
	err = uc.DeleteResume(ctx, second.ID)
	assertAppError(t, err, http.StatusNotFound)

	list, err = uc.ListResumes(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExportResume(t *testing.T) {
	validate := validation.New()
	uc := usecase.NewResumeUsecase(newGateway(), validate)
	ctx := userCtx("u1")

	rec, err := uc.CreateResume(ctx, &domain.CreateResumeRequest{Title: "My Resume: 2024"})
	require.NoError(t, err)
	_, err = uc.UpdateSection(ctx, rec.ID, domain.SectionSkills, []byte(`[{"name":"Go","rating":5}]`))
	require.NoError(t, err)

	data, name, err := uc.ExportResume(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "My_Resume_2024.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Personal", "Education", "Experience", "Skills", "Projects"}, f.GetSheetList())

	v, err := f.GetCellValue("Skills", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Go", v)
}
