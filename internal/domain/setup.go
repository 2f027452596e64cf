package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Wizard tracks the step index of a multi-step setup flow. It only ever
// moves by one step in either direction.
type Wizard struct {
	Step  int `json:"step"`
	Total int `json:"total"`
}

func (w Wizard) IsFirst() bool { return w.Step <= 0 }

func (w Wizard) IsLast() bool { return w.Step >= w.Total-1 }

// Next returns the wizard advanced by one step, clamped to the last step.
func (w Wizard) Next() Wizard {
	if !w.IsLast() {
		w.Step++
	}
	return w
}

// Back returns the wizard moved back by one step, clamped to the first step.
func (w Wizard) Back() Wizard {
	if !w.IsFirst() {
		w.Step--
	}
	return w
}

type SetupKind string

const (
	SetupEmployee SetupKind = "employee"
	SetupEmployer SetupKind = "employer"
)

// EmployeeSetupSteps lists the employee wizard steps in order.
var EmployeeSetupSteps = []string{"personal", "education", "experience", "skills", "preferences"}

// EmployerSetupSteps lists the employer wizard steps in order.
var EmployerSetupSteps = []string{"company", "details", "contact"}

func (k SetupKind) Steps() []string {
	switch k {
	case SetupEmployee:
		return EmployeeSetupSteps
	case SetupEmployer:
		return EmployerSetupSteps
	}
	return nil
}

func (k SetupKind) IsValid() bool {
	return k == SetupEmployee || k == SetupEmployer
}

// SetupState is returned after every wizard action.
type SetupState struct {
	Kind     SetupKind `json:"kind"`
	Step     int       `json:"step"`
	StepName string    `json:"stepName"`
	Total    int       `json:"total"`
	Complete bool      `json:"complete"`
}

// SetupStepRequest submits the data of the current step. Data is decoded
// according to the step name.
type SetupStepRequest struct {
	Step int             `json:"step" validate:"min=0"`
	Data json.RawMessage `json:"data"`
}

// Employee step payloads.

type SkillsStep struct {
	Skills         []string             `json:"skills" validate:"dive,max=60"`
	Certifications []CertificationEntry `json:"certifications" validate:"dive"`
}

type EducationStep struct {
	Education []EducationEntry `json:"education" validate:"dive"`
}

type ExperienceStep struct {
	Experience []ExperienceEntry `json:"experience" validate:"dive"`
}

// EmployerProfile is stored at employers/{uid}.
type EmployerProfile struct {
	CompanyName   string     `json:"companyName"`
	Industry      string     `json:"industry"`
	CompanySize   string     `json:"companySize"`
	Website       string     `json:"website"`
	Location      string     `json:"location"`
	Description   string     `json:"description"`
	ContactName   string     `json:"contactName"`
	ContactEmail  string     `json:"contactEmail"`
	ContactPhone  string     `json:"contactPhone"`
	SetupStep     int        `json:"setupStep"`
	SetupComplete bool       `json:"setupComplete"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// Employer step payloads.

type EmployerCompanyStep struct {
	CompanyName string `json:"companyName" validate:"required,min=2,max=150,valid_name"`
	Industry    string `json:"industry" validate:"required,max=100"`
}

type EmployerDetailsStep struct {
	CompanySize string `json:"companySize" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 501-1000 1000+"`
	Website     string `json:"website" validate:"omitempty,url"`
	Location    string `json:"location" validate:"max=120"`
	Description string `json:"description" validate:"max=4000"`
}

type EmployerContactStep struct {
	ContactName  string `json:"contactName" validate:"required,max=100,valid_name"`
	ContactEmail string `json:"contactEmail" validate:"required,email"`
	ContactPhone string `json:"contactPhone" validate:"omitempty,valid_phone"`
}

type SetupUsecase interface {
	GetState(ctx context.Context, kind SetupKind) (*SetupState, error)
	Next(ctx context.Context, kind SetupKind, req *SetupStepRequest) (*SetupState, error)
	Back(ctx context.Context, kind SetupKind) (*SetupState, error)
}
