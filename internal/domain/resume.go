package domain

import (
	"context"
	"time"
)

type ResumePersonal struct {
	FirstName string `json:"firstName" validate:"max=60,valid_name"`
	LastName  string `json:"lastName" validate:"max=60,valid_name"`
	JobTitle  string `json:"jobTitle" validate:"max=100,no_emoji"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,valid_phone"`
	Address   string `json:"address" validate:"max=200"`
}

type ResumeEducation struct {
	UniversityName string `json:"universityName" validate:"max=150"`
	Degree         string `json:"degree" validate:"max=100"`
	Major          string `json:"major" validate:"max=100"`
	StartDate      string `json:"startDate" validate:"date_or_empty"`
	EndDate        string `json:"endDate" validate:"date_or_empty"`
	Description    string `json:"description" validate:"max=2000"`
}

type ResumeExperience struct {
	Title            string `json:"title" validate:"max=100"`
	CompanyName      string `json:"companyName" validate:"max=150"`
	City             string `json:"city" validate:"max=80"`
	State            string `json:"state" validate:"max=80"`
	StartDate        string `json:"startDate" validate:"date_or_empty"`
	EndDate          string `json:"endDate" validate:"date_or_empty"`
	CurrentlyWorking bool   `json:"currentlyWorking"`
	WorkSummary      string `json:"workSummary" validate:"max=4000"`
}

type ResumeSkill struct {
	Name   string `json:"name" validate:"max=60"`
	Rating int    `json:"rating" validate:"min=0,max=5"`
}

type ResumeProject struct {
	ProjectName    string `json:"projectName" validate:"max=150"`
	TechStack      string `json:"techStack" validate:"max=300"`
	ProjectSummary string `json:"projectSummary" validate:"max=4000"`
}

// ResumeRecord is one named resume under users/{uid}/resumes/{id}.
type ResumeRecord struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	ThemeColor  string             `json:"themeColor"`
	Personal    ResumePersonal     `json:"personal"`
	Summary     string             `json:"summary"`
	Education   []ResumeEducation  `json:"education"`
	Experience  []ResumeExperience `json:"experience"`
	Skills      []ResumeSkill      `json:"skills"`
	Projects    []ResumeProject    `json:"projects"`
	CreatedAt   time.Time          `json:"createdAt"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

// ResumeSeed is the profile-derived starting point of a new resume.
type ResumeSeed struct {
	Personal   ResumePersonal     `json:"personal"`
	Summary    string             `json:"summary"`
	Skills     []string           `json:"skills"`
	Experience []ResumeExperience `json:"experience"`
	Education  []ResumeEducation  `json:"education"`
	Projects   []ResumeProject    `json:"projects"`
}

const DefaultThemeColor = "#ff6666"

// ResumeSection names a slice of a resume that is persisted on its own.
type ResumeSection string

const (
	SectionMeta       ResumeSection = "meta"
	SectionPersonal   ResumeSection = "personal"
	SectionSummary    ResumeSection = "summary"
	SectionEducation  ResumeSection = "education"
	SectionExperience ResumeSection = "experience"
	SectionSkills     ResumeSection = "skills"
	SectionProjects   ResumeSection = "projects"
)

func (s ResumeSection) IsValid() bool {
	switch s {
	case SectionMeta, SectionPersonal, SectionSummary, SectionEducation,
		SectionExperience, SectionSkills, SectionProjects:
		return true
	}
	return false
}

type CreateResumeRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=100,no_emoji"`
	ThemeColor  string `json:"themeColor" validate:"omitempty,hex_color"`
	FromProfile bool   `json:"fromProfile"`
}

// Section payloads. Exactly one is decoded per UpdateSection call.

type ResumeMetaSection struct {
	Title      string `json:"title" validate:"required,min=1,max=100,no_emoji"`
	ThemeColor string `json:"themeColor" validate:"omitempty,hex_color"`
}

type ResumeSummarySection struct {
	Summary string `json:"summary" validate:"max=4000"`
}

type ResumeUsecase interface {
	CreateResume(ctx context.Context, req *CreateResumeRequest) (*ResumeRecord, error)
	GetResume(ctx context.Context, resumeID string) (*ResumeRecord, error)
	ListResumes(ctx context.Context) ([]ResumeRecord, error)
	DeleteResume(ctx context.Context, resumeID string) error
	UpdateSection(ctx context.Context, resumeID string, section ResumeSection, payload []byte) (*ResumeRecord, error)
	ExportResume(ctx context.Context, resumeID string) ([]byte, string, error)
}
