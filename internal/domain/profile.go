package domain

import (
	"context"
	"time"
)

// PersonalInfo is the identity block of a DetailedProfileRecord.
type PersonalInfo struct {
	FullName string `json:"fullName" validate:"omitempty,max=100,valid_name"`
	JobTitle string `json:"jobTitle" validate:"omitempty,max=100,no_emoji"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,valid_phone"`
	Location string `json:"location" validate:"omitempty,max=120"`
	Summary  string `json:"summary" validate:"omitempty,max=2000"`
}

type EducationEntry struct {
	Institution string `json:"institution" validate:"max=150"`
	Degree      string `json:"degree" validate:"max=100"`
	Field       string `json:"field" validate:"max=100"`
	StartDate   string `json:"startDate" validate:"date_or_empty"`
	EndDate     string `json:"endDate" validate:"date_or_empty"`
	Description string `json:"description" validate:"max=2000"`
}

type ExperienceEntry struct {
	Company     string `json:"company" validate:"max=150"`
	Position    string `json:"position" validate:"max=100"`
	Location    string `json:"location" validate:"max=120"`
	StartDate   string `json:"startDate" validate:"date_or_empty"`
	EndDate     string `json:"endDate" validate:"date_or_empty"`
	Current     bool   `json:"current"`
	Description string `json:"description" validate:"max=4000"`
}

type CertificationEntry struct {
	Name         string `json:"name" validate:"max=150"`
	Organization string `json:"organization" validate:"max=150"`
	IssueDate    string `json:"issueDate" validate:"date_or_empty"`
	ExpiryDate   string `json:"expiryDate" validate:"date_or_empty"`
	CredentialID string `json:"credentialID" validate:"max=300"`
	Description  string `json:"description" validate:"max=2000"`
}

type JobPreferences struct {
	DesiredJobTitle string `json:"desiredJobTitle" validate:"max=100,no_emoji"`
	JobType         string `json:"jobType" validate:"omitempty,oneof=full-time part-time contract internship freelance"`
	WorkEnvironment string `json:"workEnvironment" validate:"omitempty,oneof=onsite remote hybrid"`
	SalaryMin       string `json:"salaryMin" validate:"max=30"`
	SalaryMax       string `json:"salaryMax" validate:"max=30"`
	Availability    string `json:"availability" validate:"max=100"`
}

type ProfileMetadata struct {
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	ProfileComplete bool       `json:"profileComplete"`
	SetupStep       int        `json:"setupStep"`
}

// DetailedProfileRecord is the write shape of users/{uid}/profile/details.
type DetailedProfileRecord struct {
	PersonalInfo   PersonalInfo         `json:"personalInfo"`
	Education      []EducationEntry     `json:"education" validate:"dive"`
	Experience     []ExperienceEntry    `json:"experience" validate:"dive"`
	Certifications []CertificationEntry `json:"certifications" validate:"dive"`
	Skills         []string             `json:"skills" validate:"dive,max=60"`
	JobPreferences JobPreferences       `json:"jobPreferences"`
}

// ListPolicy chooses what an absent list turns into.
type ListPolicy int

const (
	// DisplayPolicy renders absent lists as empty.
	DisplayPolicy ListPolicy = iota
	// EditPolicy renders absent lists as one blank template entry so a form
	// always has a row to fill in.
	EditPolicy
)

// ResolvedProfile is the merged view of the basic account record and the
// detailed profile record.
type ResolvedProfile struct {
	FullName        string               `json:"fullName"`
	JobTitle        string               `json:"jobTitle"`
	Email           string               `json:"email"`
	Phone           string               `json:"phone"`
	Location        string               `json:"location"`
	Summary         string               `json:"summary"`
	Education       []EducationEntry     `json:"education"`
	Experience      []ExperienceEntry    `json:"experience"`
	Certifications  []CertificationEntry `json:"certifications"`
	Skills          []string             `json:"skills"`
	JobPreferences  JobPreferences       `json:"jobPreferences"`
	ProfileComplete bool                 `json:"profileComplete"`
	HasDetails      bool                 `json:"hasDetails"`
}

// ProfileList names the list fields that can be edited by index.
type ProfileList string

const (
	ListEducation      ProfileList = "education"
	ListExperience     ProfileList = "experience"
	ListCertifications ProfileList = "certifications"
	ListSkills         ProfileList = "skills"
)

func (l ProfileList) IsValid() bool {
	switch l {
	case ListEducation, ListExperience, ListCertifications, ListSkills:
		return true
	}
	return false
}

type ProfileUsecase interface {
	GetProfile(ctx context.Context, policy ListPolicy) (*ResolvedProfile, error)
	SaveProfile(ctx context.Context, rec *DetailedProfileRecord) (*ResolvedProfile, error)
	AddSkill(ctx context.Context, skill string) (*ResolvedProfile, error)
	RemoveEntry(ctx context.Context, list ProfileList, index int) (*ResolvedProfile, error)
}
