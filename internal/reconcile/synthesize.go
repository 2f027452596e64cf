package reconcile

import (
	"strings"
	"time"

	"career-portal-backend/internal/domain"
)

// SplitFullName splits on the first run of whitespace: the first token is
// the first name, the remaining tokens rejoined with single spaces are the
// last name.
func SplitFullName(fullName string) (first, last string) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return "", ""
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}

// SynthesizeResume builds the seed of a first resume from a resolved
// profile. Experience, education and projects start empty; their editors
// fill them in later.
func SynthesizeResume(p domain.ResolvedProfile) domain.ResumeSeed {
	first, last := SplitFullName(p.FullName)

	jobTitle := p.JobTitle
	if desired := strings.TrimSpace(p.JobPreferences.DesiredJobTitle); desired != "" {
		jobTitle = desired
	}

	skills := make([]string, 0, len(p.Skills))
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	return domain.ResumeSeed{
		Personal: domain.ResumePersonal{
			FirstName: first,
			LastName:  last,
			JobTitle:  jobTitle,
			Email:     p.Email,
			Phone:     p.Phone,
			Address:   p.Location,
		},
		Summary:    p.Summary,
		Skills:     skills,
		Experience: []domain.ResumeExperience{},
		Education:  []domain.ResumeEducation{},
		Projects:   []domain.ResumeProject{},
	}
}

// NewResumeRecord builds the record persisted for a freshly created resume.
// Seed skills start unrated.
func NewResumeRecord(id, title, themeColor string, seed domain.ResumeSeed, now time.Time) domain.ResumeRecord {
	if themeColor == "" {
		themeColor = domain.DefaultThemeColor
	}
	skills := make([]domain.ResumeSkill, 0, len(seed.Skills))
	for _, s := range seed.Skills {
		skills = append(skills, domain.ResumeSkill{Name: s})
	}
	return domain.ResumeRecord{
		ID:          id,
		Title:       title,
		ThemeColor:  themeColor,
		Personal:    seed.Personal,
		Summary:     seed.Summary,
		Education:   nonNil(seed.Education),
		Experience:  nonNil(seed.Experience),
		Skills:      skills,
		Projects:    nonNil(seed.Projects),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
