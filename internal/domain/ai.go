package domain

import "context"

type SummaryVariant struct {
	ExperienceLevel string `json:"experienceLevel"`
	Summary         string `json:"summary"`
}

type MCQQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// MCQResult is the outcome of scoring one practice round.
type MCQResult struct {
	Total   int            `json:"total"`
	Correct int            `json:"correct"`
	Percent float64        `json:"percent"`
	Items   []MCQItemScore `json:"items"`
}

type MCQItemScore struct {
	Index    int    `json:"index"`
	Selected string `json:"selected"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}

type InterviewQuestion struct {
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
	Tip      string `json:"tip,omitempty"`
}

type InterviewFeedback struct {
	Score          int    `json:"score"`
	Feedback       string `json:"feedback"`
	ImprovedAnswer string `json:"improvedAnswer,omitempty"`
}

type CareerPath struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"requiredSkills"`
	MissingSkills  []string `json:"missingSkills"`
	NextSteps      []string `json:"nextSteps"`
}

type SummaryRequest struct {
	JobTitle string `json:"jobTitle" validate:"required,max=100"`
	Context  string `json:"context" validate:"max=2000"`
}

type ExperienceBulletsRequest struct {
	Position string `json:"position" validate:"required,max=100"`
	Company  string `json:"company" validate:"max=150"`
	Context  string `json:"context" validate:"max=2000"`
}

type ProjectBulletsRequest struct {
	ProjectName string `json:"projectName" validate:"required,max=150"`
	TechStack   string `json:"techStack" validate:"max=300"`
}

type MCQRequest struct {
	Topic      string `json:"topic" validate:"required,max=100"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=20"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

type MCQScoreRequest struct {
	Questions []MCQQuestion `json:"questions" validate:"required,min=1,max=50"`
	Answers   []string      `json:"answers"`
}

type InterviewQuestionsRequest struct {
	JobTitle string `json:"jobTitle" validate:"required,max=100"`
	Count    int    `json:"count" validate:"omitempty,min=1,max=15"`
}

type InterviewEvaluateRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
	Answer   string `json:"answer" validate:"required,max=6000"`
}

type AIUsecase interface {
	GenerateSummaries(ctx context.Context, req *SummaryRequest) ([]SummaryVariant, error)
	GenerateExperienceBullets(ctx context.Context, req *ExperienceBulletsRequest) ([]string, error)
	GenerateProjectBullets(ctx context.Context, req *ProjectBulletsRequest) ([]string, error)
	GenerateMCQ(ctx context.Context, req *MCQRequest) ([]MCQQuestion, error)
	ScoreMCQ(ctx context.Context, req *MCQScoreRequest) (*MCQResult, error)
	GenerateInterviewQuestions(ctx context.Context, req *InterviewQuestionsRequest) ([]InterviewQuestion, error)
	EvaluateInterviewAnswer(ctx context.Context, req *InterviewEvaluateRequest) (*InterviewFeedback, error)
	RecommendCareerPaths(ctx context.Context) ([]CareerPath, error)
	// ImportProfile drafts a DetailedProfileRecord from an uploaded resume
	// file. The draft is returned for review and is not saved.
	ImportProfile(ctx context.Context, filename, contentType string, data []byte) (*DetailedProfileRecord, error)
}

// MaxResumeFileBytes caps resume uploads for profile import.
const MaxResumeFileBytes = 5 << 20
