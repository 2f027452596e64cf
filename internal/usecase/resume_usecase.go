package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type resumeUsecase struct {
	gw       domain.PersistenceGateway
	validate *validator.Validate
	now      func() time.Time
}

func NewResumeUsecase(gw domain.PersistenceGateway, validate *validator.Validate) domain.ResumeUsecase {
	return &resumeUsecase{
		gw:       gw,
		validate: validate,
		now:      time.Now,
	}
}

// CreateResume stores a new resume, seeded from the profile when asked.
func (u *resumeUsecase) CreateResume(ctx context.Context, req *domain.CreateResumeRequest) (*domain.ResumeRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	var seed domain.ResumeSeed
	if req.FromProfile {
		p, err := loadProfile(ctx, u.gw, cu.UID, domain.DisplayPolicy)
		if err != nil {
			return nil, err
		}
		seed = reconcile.SynthesizeResume(p)
	}

	now := u.now().UTC()
	rec := reconcile.NewResumeRecord("", strings.TrimSpace(req.Title), req.ThemeColor, seed, now)
	doc, err := domain.ToDocument(rec)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	delete(doc, "id")

	id, err := u.gw.CreateResume(ctx, cu.UID, doc)
	if err != nil {
		logger.Log.Error("create resume failed", "user_id", cu.UID, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	rec.ID = id
	u.touchAccount(ctx, cu.UID, now)

	logger.Log.Info("resume created", "user_id", cu.UID, "resume_id", id, "from_profile", req.FromProfile)
	return &rec, nil
}

func (u *resumeUsecase) GetResume(ctx context.Context, resumeID string) (*domain.ResumeRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := u.gw.ReadResume(ctx, cu.UID, resumeID)
	if resumeMissing(err) {
		return nil, apperror.NotFound("Resume not found")
	}
	if err != nil {
		logger.Log.Error("read resume failed", "user_id", cu.UID, "resume_id", resumeID, "error", err)
		return nil, apperror.LoadFailed(err)
	}
	if doc == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	rec := reconcile.NormalizeResume(resumeID, doc)
	return &rec, nil
}

// ListResumes returns the caller's resumes, most recently edited first.
func (u *resumeUsecase) ListResumes(ctx context.Context) ([]domain.ResumeRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := u.gw.ListResumes(ctx, cu.UID)
	if err != nil {
		logger.Log.Error("list resumes failed", "user_id", cu.UID, "error", err)
		return nil, apperror.LoadFailed(err)
	}

	out := make([]domain.ResumeRecord, 0, len(stored))
	for _, d := range stored {
		rec := reconcile.NormalizeResume(d.ID, d.Data)
		if rec.LastUpdated.IsZero() {
			rec.LastUpdated = d.UpdatedAt
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = d.CreatedAt
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUpdated.After(out[j].LastUpdated)
	})
	return out, nil
}

func (u *resumeUsecase) DeleteResume(ctx context.Context, resumeID string) error {
	cu, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := u.gw.DeleteResume(ctx, cu.UID, resumeID); err != nil {
		if resumeMissing(err) {
			return apperror.NotFound("Resume not found")
		}
		logger.Log.Error("delete resume failed", "user_id", cu.UID, "resume_id", resumeID, "error", err)
		return apperror.SaveFailed(err)
	}
	logger.Log.Info("resume deleted", "user_id", cu.UID, "resume_id", resumeID)
	return nil
}

// UpdateSection persists one section of a resume. Other sections are left
// untouched by the merge-write.
func (u *resumeUsecase) UpdateSection(ctx context.Context, resumeID string, section domain.ResumeSection, payload []byte) (*domain.ResumeRecord, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if !section.IsValid() {
		return nil, apperror.BadRequest("Unknown resume section")
	}

	partial, err := u.sectionData(section, payload)
	if err != nil {
		return nil, err
	}
	now := u.now().UTC()
	partial["lastUpdated"] = now

	if err := u.gw.WriteResumeSection(ctx, cu.UID, resumeID, partial); err != nil {
		if resumeMissing(err) {
			return nil, apperror.NotFound("Resume not found")
		}
		logger.Log.Error("write resume section failed", "user_id", cu.UID, "resume_id", resumeID, "section", section, "error", err)
		return nil, apperror.SaveFailed(err)
	}
	u.touchAccount(ctx, cu.UID, now)

	return u.GetResume(ctx, resumeID)
}

func (u *resumeUsecase) sectionData(section domain.ResumeSection, payload []byte) (domain.Document, error) {
	badBody := apperror.BadRequest("Invalid request body")

	switch section {
	case domain.SectionMeta:
		var meta domain.ResumeMetaSection
		if err := json.Unmarshal(payload, &meta); err != nil {
			return nil, badBody
		}
		if err := u.validate.Struct(meta); err != nil {
			return nil, validationError(err)
		}
		partial := domain.Document{"title": strings.TrimSpace(meta.Title)}
		if meta.ThemeColor != "" {
			partial["themeColor"] = meta.ThemeColor
		}
		return partial, nil

	case domain.SectionPersonal:
		var personal domain.ResumePersonal
		if err := json.Unmarshal(payload, &personal); err != nil {
			return nil, badBody
		}
		if err := u.validate.Struct(personal); err != nil {
			return nil, validationError(err)
		}
		return sectionValue("personal", personal)

	case domain.SectionSummary:
		var summary domain.ResumeSummarySection
		if err := json.Unmarshal(payload, &summary); err != nil {
			return nil, badBody
		}
		if err := u.validate.Struct(summary); err != nil {
			return nil, validationError(err)
		}
		return domain.Document{"summary": strings.TrimSpace(summary.Summary)}, nil

	case domain.SectionEducation:
		return decodeList[domain.ResumeEducation](u.validate, "education", payload)
	case domain.SectionExperience:
		return decodeList[domain.ResumeExperience](u.validate, "experience", payload)
	case domain.SectionProjects:
		return decodeList[domain.ResumeProject](u.validate, "projects", payload)

	case domain.SectionSkills:
		var skills []domain.ResumeSkill
		if err := json.Unmarshal(payload, &skills); err != nil {
			return nil, badBody
		}
		if err := u.validate.Struct(listOf[domain.ResumeSkill]{Items: skills}); err != nil {
			return nil, validationError(err)
		}
		return sectionValue("skills", dedupeResumeSkills(skills))
	}
	return nil, apperror.BadRequest("Unknown resume section")
}

// decodeList reads a JSON array section, validates every entry and drops
// blank rows.
func decodeList[T comparable](validate *validator.Validate, key string, payload []byte) (domain.Document, error) {
	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, apperror.BadRequest("Invalid request body")
	}
	if err := validate.Struct(listOf[T]{Items: items}); err != nil {
		return nil, validationError(err)
	}
	return sectionValue(key, compact(items))
}

func sectionValue(key string, v any) (domain.Document, error) {
	value, err := toValue(v)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return domain.Document{key: value}, nil
}

// dedupeResumeSkills drops unnamed skills and repeats of a name, keeping
// the first rating given.
func dedupeResumeSkills(skills []domain.ResumeSkill) []domain.ResumeSkill {
	out := make([]domain.ResumeSkill, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s.Name = strings.TrimSpace(s.Name)
		key := strings.ToLower(s.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

// touchAccount bumps the account's lastUpdated after a resume write. A
// failure here does not undo the resume write, so it is only logged.
func (u *resumeUsecase) touchAccount(ctx context.Context, uid string, now time.Time) {
	if err := u.gw.WriteAccount(ctx, uid, domain.Document{"lastUpdated": now}); err != nil {
		logger.Log.Warn("touch account failed", "user_id", uid, "error", err)
	}
}

// ExportResume renders a resume as a workbook with one sheet per section.
func (u *resumeUsecase) ExportResume(ctx context.Context, resumeID string) ([]byte, string, error) {
	rec, err := u.GetResume(ctx, resumeID)
	if err != nil {
		return nil, "", err
	}

	personal := sheet{
		name:    "Personal",
		headers: []string{"FIELD", "VALUE"},
		rows: [][]any{
			{"Title", rec.Title},
			{"First name", rec.Personal.FirstName},
			{"Last name", rec.Personal.LastName},
			{"Job title", rec.Personal.JobTitle},
			{"Email", rec.Personal.Email},
			{"Phone", rec.Personal.Phone},
			{"Address", rec.Personal.Address},
			{"Summary", rec.Summary},
		},
	}

	education := sheet{name: "Education", headers: []string{"UNIVERSITY", "DEGREE", "MAJOR", "START", "END", "DESCRIPTION"}}
	for _, e := range rec.Education {
		education.rows = append(education.rows, []any{e.UniversityName, e.Degree, e.Major, e.StartDate, e.EndDate, e.Description})
	}

	experience := sheet{name: "Experience", headers: []string{"TITLE", "COMPANY", "CITY", "STATE", "START", "END", "CURRENT", "SUMMARY"}}
	for _, e := range rec.Experience {
		end := e.EndDate
		if e.CurrentlyWorking {
			end = "Present"
		}
		experience.rows = append(experience.rows, []any{e.Title, e.CompanyName, e.City, e.State, e.StartDate, end, e.CurrentlyWorking, e.WorkSummary})
	}

	skills := sheet{name: "Skills", headers: []string{"SKILL", "RATING"}}
	for _, s := range rec.Skills {
		skills.rows = append(skills.rows, []any{s.Name, s.Rating})
	}

	projects := sheet{name: "Projects", headers: []string{"PROJECT", "TECH STACK", "SUMMARY"}}
	for _, p := range rec.Projects {
		projects.rows = append(projects.rows, []any{p.ProjectName, p.TechStack, p.ProjectSummary})
	}

	data, err := buildWorkbook([]sheet{personal, education, experience, skills, projects})
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	return data, exportFilename(rec.Title, fmt.Sprintf("resume_%s", resumeID)), nil
}
