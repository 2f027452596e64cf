package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"career-portal-backend/internal/domain"
	"career-portal-backend/internal/reconcile"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/docparse"
	"career-portal-backend/pkg/llm"
	"career-portal-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

const (
	defaultMCQCount       = 5
	defaultMCQDifficulty  = "medium"
	defaultQuestionCount  = 5
	maxImportPromptRunes  = 12000
	aiUnavailableMessage  = "AI assistance is not configured"
	aiMalformedMessage    = "AI did not return valid data"
	aiUpstreamFailMessage = "AI request failed"
)

type aiUsecase struct {
	model    llm.ChatModel
	gw       domain.PersistenceGateway
	validate *validator.Validate
}

// NewAIUsecase wires the AI helpers. model may be nil, in which case every
// generation call answers 503.
func NewAIUsecase(model llm.ChatModel, gw domain.PersistenceGateway, validate *validator.Validate) domain.AIUsecase {
	return &aiUsecase{
		model:    model,
		gw:       gw,
		validate: validate,
	}
}

// ask sends one prompt and decodes the JSON part of the reply into out.
func (u *aiUsecase) ask(ctx context.Context, op, system, user string, out any) error {
	if u.model == nil {
		return apperror.Unavailable(aiUnavailableMessage)
	}
	reply, err := u.model.Ask(ctx, system, user)
	if err != nil {
		logger.Log.Error("ai request failed", "op", op, "error", err)
		return apperror.BadGateway(aiUpstreamFailMessage, err)
	}
	if err := llm.DecodeJSON(reply, out); err != nil {
		logger.Log.Warn("ai reply not parsable", "op", op, "error", err)
		return apperror.BadGateway(aiMalformedMessage, err)
	}
	return nil
}

func (u *aiUsecase) GenerateSummaries(ctx context.Context, req *domain.SummaryRequest) ([]domain.SummaryVariant, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := fmt.Sprintf(`Job title: %s
Additional context: %s

Write three professional resume summaries for this job title, one each for the experience levels "Fresher", "Mid-Level" and "Senior".
Return ONLY a JSON array of objects with the keys "experienceLevel" and "summary". Each summary is 3-4 sentences.`,
		req.JobTitle, orNone(req.Context))

	var out []domain.SummaryVariant
	if err := u.ask(ctx, "summaries", systemResumeWriter, user, &out); err != nil {
		return nil, err
	}
	return nonEmptySummaries(out)
}

func (u *aiUsecase) GenerateExperienceBullets(ctx context.Context, req *domain.ExperienceBulletsRequest) ([]string, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := fmt.Sprintf(`Position: %s
Company: %s
Additional context: %s

Write 4-6 achievement-oriented resume bullet points for this position. Start each with a strong action verb and quantify results where plausible.
Return ONLY a JSON array of strings.`,
		req.Position, orNone(req.Company), orNone(req.Context))

	return u.askBullets(ctx, "experience_bullets", user)
}

func (u *aiUsecase) GenerateProjectBullets(ctx context.Context, req *domain.ProjectBulletsRequest) ([]string, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := fmt.Sprintf(`Project: %s
Tech stack: %s

Write 3-5 resume bullet points describing this project, what was built and its impact.
Return ONLY a JSON array of strings.`,
		req.ProjectName, orNone(req.TechStack))

	return u.askBullets(ctx, "project_bullets", user)
}

func (u *aiUsecase) askBullets(ctx context.Context, op, user string) ([]string, error) {
	var out []string
	if err := u.ask(ctx, op, systemResumeWriter, user, &out); err != nil {
		return nil, err
	}
	bullets := reconcile.CoerceStrings(toAnySlice(out), domain.DisplayPolicy)
	if len(bullets) == 0 {
		return nil, apperror.BadGateway(aiMalformedMessage, llm.ErrMalformedResponse)
	}
	return bullets, nil
}

func (u *aiUsecase) GenerateMCQ(ctx context.Context, req *domain.MCQRequest) ([]domain.MCQQuestion, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	count := req.Count
	if count == 0 {
		count = defaultMCQCount
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = defaultMCQDifficulty
	}

	user := fmt.Sprintf(`Topic: %s
Difficulty: %s

Write %d multiple choice questions on this topic. Every question has exactly 4 options and one correct answer, which must be copied verbatim from the options.
Return ONLY a JSON array of objects with the keys "question", "options", "answer" and "explanation".`,
		req.Topic, difficulty, count)

	var raw []domain.MCQQuestion
	if err := u.ask(ctx, "mcq", systemInterviewCoach, user, &raw); err != nil {
		return nil, err
	}

	out := make([]domain.MCQQuestion, 0, len(raw))
	for _, q := range raw {
		if validMCQ(q) {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, apperror.BadGateway(aiMalformedMessage, llm.ErrMalformedResponse)
	}
	return out, nil
}

// validMCQ drops questions whose answer is not one of their options.
func validMCQ(q domain.MCQQuestion) bool {
	if strings.TrimSpace(q.Question) == "" || len(q.Options) < 2 {
		return false
	}
	for _, o := range q.Options {
		if o == q.Answer {
			return true
		}
	}
	return false
}

// ScoreMCQ grades answers against the questions' answers. A missing answer
// counts as wrong.
func (u *aiUsecase) ScoreMCQ(ctx context.Context, req *domain.MCQScoreRequest) (*domain.MCQResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	res := &domain.MCQResult{
		Total: len(req.Questions),
		Items: make([]domain.MCQItemScore, 0, len(req.Questions)),
	}
	for i, q := range req.Questions {
		var selected string
		if i < len(req.Answers) {
			selected = req.Answers[i]
		}
		ok := selected != "" && strings.EqualFold(strings.TrimSpace(selected), strings.TrimSpace(q.Answer))
		if ok {
			res.Correct++
		}
		res.Items = append(res.Items, domain.MCQItemScore{
			Index:    i,
			Selected: selected,
			Answer:   q.Answer,
			Correct:  ok,
		})
	}
	if res.Total > 0 {
		res.Percent = float64(res.Correct*10000/res.Total) / 100
	}
	return res, nil
}

func (u *aiUsecase) GenerateInterviewQuestions(ctx context.Context, req *domain.InterviewQuestionsRequest) ([]domain.InterviewQuestion, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	count := req.Count
	if count == 0 {
		count = defaultQuestionCount
	}

	user := fmt.Sprintf(`Job title: %s

Write %d interview questions for this role, mixing technical and behavioural questions.
Return ONLY a JSON array of objects with the keys "question", "category" and "tip".`,
		req.JobTitle, count)

	var raw []domain.InterviewQuestion
	if err := u.ask(ctx, "interview_questions", systemInterviewCoach, user, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.InterviewQuestion, 0, len(raw))
	for _, q := range raw {
		if strings.TrimSpace(q.Question) != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, apperror.BadGateway(aiMalformedMessage, llm.ErrMalformedResponse)
	}
	return out, nil
}

func (u *aiUsecase) EvaluateInterviewAnswer(ctx context.Context, req *domain.InterviewEvaluateRequest) (*domain.InterviewFeedback, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user := fmt.Sprintf(`Interview question: %s
Candidate answer: %s

Rate the answer from 0 to 10, give short constructive feedback and an improved version of the answer.
Return ONLY a JSON object with the keys "score", "feedback" and "improvedAnswer".`,
		req.Question, req.Answer)

	var out domain.InterviewFeedback
	if err := u.ask(ctx, "interview_evaluate", systemInterviewCoach, user, &out); err != nil {
		return nil, err
	}
	out.Score = max(0, min(10, out.Score))
	return &out, nil
}

// RecommendCareerPaths suggests next roles from the caller's resolved
// profile.
func (u *aiUsecase) RecommendCareerPaths(ctx context.Context) ([]domain.CareerPath, error) {
	cu, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.model == nil {
		return nil, apperror.Unavailable(aiUnavailableMessage)
	}
	p, err := loadProfile(ctx, u.gw, cu.UID, domain.DisplayPolicy)
	if err != nil {
		return nil, err
	}

	var positions []string
	for _, e := range p.Experience {
		if e.Position != "" {
			positions = append(positions, strings.TrimSpace(e.Position+" at "+e.Company))
		}
	}

	user := fmt.Sprintf(`Current title: %s
Desired title: %s
Skills: %s
Experience: %s

Suggest 3 realistic career paths for this person. For each list the skills it requires, the skills this person is missing and concrete next steps.
Return ONLY a JSON array of objects with the keys "title", "description", "requiredSkills", "missingSkills" and "nextSteps".`,
		orNone(p.JobTitle), orNone(p.JobPreferences.DesiredJobTitle),
		orNone(strings.Join(p.Skills, ", ")), orNone(strings.Join(positions, "; ")))

	var raw []domain.CareerPath
	if err := u.ask(ctx, "career_paths", systemCareerAdvisor, user, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.CareerPath, 0, len(raw))
	for _, c := range raw {
		if strings.TrimSpace(c.Title) == "" {
			continue
		}
		c.RequiredSkills = nonNilStrings(c.RequiredSkills)
		c.MissingSkills = nonNilStrings(c.MissingSkills)
		c.NextSteps = nonNilStrings(c.NextSteps)
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, apperror.BadGateway(aiMalformedMessage, llm.ErrMalformedResponse)
	}
	return out, nil
}

// ImportProfile extracts text from a resume file and asks the model to map
// it onto the detailed profile shape. The reply goes through the same
// normalizer as stored profiles, so alias keys the model invents still land
// in the right fields.
func (u *aiUsecase) ImportProfile(ctx context.Context, filename, contentType string, data []byte) (*domain.DetailedProfileRecord, error) {
	if _, err := currentUser(ctx); err != nil {
		return nil, err
	}
	if u.model == nil {
		return nil, apperror.Unavailable(aiUnavailableMessage)
	}
	if len(data) == 0 {
		return nil, apperror.BadRequest("File is empty")
	}
	if len(data) > domain.MaxResumeFileBytes {
		return nil, apperror.BadRequest("File too large (max 5MB)")
	}

	text, err := docparse.ExtractText(filename, contentType, data)
	if err != nil {
		if errors.Is(err, docparse.ErrUnsupportedFormat) {
			return nil, apperror.BadRequest("Unsupported file format: only pdf, docx and txt are allowed")
		}
		logger.Log.Warn("resume text extraction failed", "filename", filename, "error", err)
		return nil, apperror.BadRequest("Could not read the uploaded file")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperror.BadRequest("No readable text found in the file")
	}
	if r := []rune(text); len(r) > maxImportPromptRunes {
		text = string(r[:maxImportPromptRunes])
	}

	user := fmt.Sprintf(`Resume text:
%s

Extract the profile of this person.
Return ONLY a JSON object with the keys:
"personalInfo" {"fullName","jobTitle","email","phone","location","summary"},
"education" [{"institution","degree","field","startDate","endDate","description"}],
"experience" [{"company","position","location","startDate","endDate","current","description"}],
"certifications" [{"name","organization","issueDate","expiryDate","credentialID","description"}],
"skills" [string].
Dates use YYYY-MM. Leave unknown fields as empty strings.`, text)

	var raw domain.Document
	if err := u.ask(ctx, "profile_import", systemResumeParser, user, &raw); err != nil {
		return nil, err
	}

	p := reconcile.MergeProfile(nil, raw)
	draft := &domain.DetailedProfileRecord{
		PersonalInfo: domain.PersonalInfo{
			FullName: p.FullName,
			JobTitle: p.JobTitle,
			Email:    p.Email,
			Phone:    p.Phone,
			Location: p.Location,
			Summary:  p.Summary,
		},
		Education:      p.Education,
		Experience:     p.Experience,
		Certifications: p.Certifications,
		Skills:         reconcile.DedupeSkills(p.Skills),
		JobPreferences: p.JobPreferences,
	}
	logger.Log.Info("profile import drafted",
		"education", len(draft.Education),
		"experience", len(draft.Experience),
		"skills", len(draft.Skills),
	)
	return draft, nil
}

const (
	systemResumeWriter   = "You are an expert resume writer. You answer with JSON only, no prose and no markdown."
	systemInterviewCoach = "You are an experienced technical interviewer and career coach. You answer with JSON only, no prose and no markdown."
	systemCareerAdvisor  = "You are a career advisor who knows the current job market. You answer with JSON only, no prose and no markdown."
	systemResumeParser   = "You convert resumes into structured data. You never invent information that is not in the resume. You answer with JSON only."
)

func orNone(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "none"
	}
	return s
}

func nonEmptySummaries(in []domain.SummaryVariant) ([]domain.SummaryVariant, error) {
	out := make([]domain.SummaryVariant, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(v.Summary) != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, apperror.BadGateway(aiMalformedMessage, llm.ErrMalformedResponse)
	}
	return out, nil
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
