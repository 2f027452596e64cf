package reconcile

import (
	"career-portal-backend/internal/domain"
)

// NormalizeResume reads a stored resume document for display. Older resumes
// kept personal fields at the top level rather than under "personal".
func NormalizeResume(id string, doc domain.Document) domain.ResumeRecord {
	r := fieldsOf(doc, KindResume)

	personal := Sub(doc, "personal", "personalDetails")
	if personal == nil {
		personal = doc
	}
	p := fieldsOf(personal, KindResumePerson)

	themeColor := r.str("themeColor")
	if themeColor == "" {
		themeColor = domain.DefaultThemeColor
	}

	return domain.ResumeRecord{
		ID:         id,
		Title:      r.str("title"),
		ThemeColor: themeColor,
		Personal: domain.ResumePersonal{
			FirstName: p.str("firstName"),
			LastName:  p.str("lastName"),
			JobTitle:  p.str("jobTitle"),
			Email:     p.str("email"),
			Phone:     p.str("phone"),
			Address:   p.str("address"),
		},
		Summary:     r.str("summary"),
		Education:   CoerceList(doc["education"], normalizeResumeEducation, domain.ResumeEducation{}, domain.DisplayPolicy),
		Experience:  CoerceList(doc["experience"], normalizeResumeExperience, domain.ResumeExperience{}, domain.DisplayPolicy),
		Skills:      coerceResumeSkills(doc["skills"]),
		Projects:    CoerceList(doc["projects"], normalizeResumeProject, domain.ResumeProject{}, domain.DisplayPolicy),
		CreatedAt:   ResolveTime(doc, "createdAt"),
		LastUpdated: ResolveTime(doc, "lastUpdated", legacyKeys(KindResume, "lastUpdated")...),
	}
}

func normalizeResumeEducation(doc domain.Document) domain.ResumeEducation {
	f := fieldsOf(doc, KindResumeEdu)
	return domain.ResumeEducation{
		UniversityName: f.str("universityName"),
		Degree:         f.str("degree"),
		Major:          f.str("major"),
		StartDate:      f.str("startDate"),
		EndDate:        f.str("endDate"),
		Description:    f.str("description"),
	}
}

func normalizeResumeExperience(doc domain.Document) domain.ResumeExperience {
	f := fieldsOf(doc, KindResumeExp)
	return domain.ResumeExperience{
		Title:            f.str("title"),
		CompanyName:      f.str("companyName"),
		City:             f.str("city"),
		State:            f.str("state"),
		StartDate:        f.str("startDate"),
		EndDate:          f.str("endDate"),
		CurrentlyWorking: f.flag("currentlyWorking"),
		WorkSummary:      f.str("workSummary"),
	}
}

func normalizeResumeProject(doc domain.Document) domain.ResumeProject {
	f := fieldsOf(doc, KindResumeProject)
	return domain.ResumeProject{
		ProjectName:    f.str("projectName"),
		TechStack:      f.str("techStack"),
		ProjectSummary: f.str("projectSummary"),
	}
}

// coerceResumeSkills accepts both {name, rating} objects and bare strings.
func coerceResumeSkills(value any) []domain.ResumeSkill {
	items := asSlice(value)
	out := make([]domain.ResumeSkill, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			if t != "" {
				out = append(out, domain.ResumeSkill{Name: t})
			}
		default:
			doc, ok := asMap(item)
			if !ok {
				continue
			}
			f := fieldsOf(doc, KindResumeSkill)
			if name := f.str("name"); name != "" {
				out = append(out, domain.ResumeSkill{Name: name, Rating: clampRating(f.num("rating"))})
			}
		}
	}
	return out
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
