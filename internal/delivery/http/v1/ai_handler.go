package v1

import (
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	aiUC    domain.AIUsecase
	uploads uploads
}

// NewAIHandler registers the AI routes. limit is the per-user AI rate
// limiter; ScoreMCQ skips it since it never calls the model.
func NewAIHandler(r *gin.RouterGroup, aiUC domain.AIUsecase, scanner antivirus.Scanner, limit gin.HandlerFunc) {
	handler := &AIHandler{aiUC: aiUC, uploads: uploads{scanner: scanner}}

	ai := r.Group("/ai")
	{
		ai.POST("/mcq/score", handler.ScoreMCQ)

		limited := ai.Group("", limit)
		limited.POST("/summaries", handler.GenerateSummaries)
		limited.POST("/experience-bullets", handler.GenerateExperienceBullets)
		limited.POST("/project-bullets", handler.GenerateProjectBullets)
		limited.POST("/mcq", handler.GenerateMCQ)
		limited.POST("/interview/questions", handler.GenerateInterviewQuestions)
		limited.POST("/interview/evaluate", handler.EvaluateInterviewAnswer)
		limited.GET("/career-paths", handler.RecommendCareerPaths)
		limited.POST("/profile-import", handler.ImportProfile)
	}
}

// bind decodes the JSON body into req, reporting a 400 on failure.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return false
	}
	return true
}

// GenerateSummaries godoc
// @Summary      Generate professional summaries
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SummaryRequest  true  "Job title and context"
// @Success      200      {object}  response.Response{data=[]domain.SummaryVariant}
// @Failure      502      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /ai/summaries [post]
// @Security     BearerAuth
func (h *AIHandler) GenerateSummaries(c *gin.Context) {
	var req domain.SummaryRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.GenerateSummaries(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Summaries generated", out)
}

// GenerateExperienceBullets godoc
// @Summary      Generate experience bullet points
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ExperienceBulletsRequest  true  "Position"
// @Success      200      {object}  response.Response{data=[]string}
// @Router       /ai/experience-bullets [post]
// @Security     BearerAuth
func (h *AIHandler) GenerateExperienceBullets(c *gin.Context) {
	var req domain.ExperienceBulletsRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.GenerateExperienceBullets(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bullets generated", out)
}

// GenerateProjectBullets godoc
// @Summary      Generate project bullet points
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ProjectBulletsRequest  true  "Project"
// @Success      200      {object}  response.Response{data=[]string}
// @Router       /ai/project-bullets [post]
// @Security     BearerAuth
func (h *AIHandler) GenerateProjectBullets(c *gin.Context) {
	var req domain.ProjectBulletsRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.GenerateProjectBullets(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Bullets generated", out)
}

// GenerateMCQ godoc
// @Summary      Generate practice questions
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.MCQRequest  true  "Topic"
// @Success      200      {object}  response.Response{data=[]domain.MCQQuestion}
// @Router       /ai/mcq [post]
// @Security     BearerAuth
func (h *AIHandler) GenerateMCQ(c *gin.Context) {
	var req domain.MCQRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.GenerateMCQ(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Questions generated", out)
}

// ScoreMCQ godoc
// @Summary      Score practice answers
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.MCQScoreRequest  true  "Questions and answers"
// @Success      200      {object}  response.Response{data=domain.MCQResult}
// @Router       /ai/mcq/score [post]
// @Security     BearerAuth
func (h *AIHandler) ScoreMCQ(c *gin.Context) {
	var req domain.MCQScoreRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.ScoreMCQ(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Answers scored", out)
}

// GenerateInterviewQuestions godoc
// @Summary      Generate interview questions
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.InterviewQuestionsRequest  true  "Job title"
// @Success      200      {object}  response.Response{data=[]domain.InterviewQuestion}
// @Router       /ai/interview/questions [post]
// @Security     BearerAuth
func (h *AIHandler) GenerateInterviewQuestions(c *gin.Context) {
	var req domain.InterviewQuestionsRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.GenerateInterviewQuestions(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Questions generated", out)
}

// EvaluateInterviewAnswer godoc
// @Summary      Evaluate an interview answer
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request  body      domain.InterviewEvaluateRequest  true  "Question and answer"
// @Success      200      {object}  response.Response{data=domain.InterviewFeedback}
// @Router       /ai/interview/evaluate [post]
// @Security     BearerAuth
func (h *AIHandler) EvaluateInterviewAnswer(c *gin.Context) {
	var req domain.InterviewEvaluateRequest
	if !bind(c, &req) {
		return
	}
	out, err := h.aiUC.EvaluateInterviewAnswer(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Answer evaluated", out)
}

// RecommendCareerPaths godoc
// @Summary      Recommend career paths from the profile
// @Tags         ai
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.CareerPath}
// @Router       /ai/career-paths [get]
// @Security     BearerAuth
func (h *AIHandler) RecommendCareerPaths(c *gin.Context) {
	out, err := h.aiUC.RecommendCareerPaths(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Career paths", out)
}

// ImportProfile godoc
// @Summary      Draft a profile from a resume file
// @Description  Accepts pdf, docx or txt up to 5MB. The draft is returned for review and not saved.
// @Tags         ai
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      200   {object}  response.Response{data=domain.DetailedProfileRecord}
// @Failure      400   {object}  response.Response
// @Router       /ai/profile-import [post]
// @Security     BearerAuth
func (h *AIHandler) ImportProfile(c *gin.Context) {
	fh, data, err := h.uploads.read(c, "file", domain.MaxResumeFileBytes)
	if err != nil {
		c.Error(err)
		return
	}
	draft, err := h.aiUC.ImportProfile(c.Request.Context(), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile draft", draft)
}
