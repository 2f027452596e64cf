package v1

import (
	"io"
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const maxSectionBody = 256 << 10

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := r.Group("/resumes")
	{
		resumes.GET("", handler.ListResumes)
		resumes.POST("", handler.CreateResume)
		resumes.GET("/:id", handler.GetResume)
		resumes.DELETE("/:id", handler.DeleteResume)
		resumes.GET("/:id/export", handler.ExportResume)
		resumes.PUT("/:id/:section", handler.UpdateSection)
	}
}

// ListResumes godoc
// @Summary      List resumes
// @Description  Most recently edited first
// @Tags         resumes
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.ResumeRecord}
// @Router       /resumes [get]
// @Security     BearerAuth
func (h *ResumeHandler) ListResumes(c *gin.Context) {
	list, err := h.resumeUC.ListResumes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resumes", list)
}

// CreateResume godoc
// @Summary      Create resume
// @Description  fromProfile seeds personal details, summary and skills from the profile
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        request  body      domain.CreateResumeRequest  true  "Resume"
// @Success      201      {object}  response.Response{data=domain.ResumeRecord}
// @Failure      400      {object}  response.Response
// @Router       /resumes [post]
// @Security     BearerAuth
func (h *ResumeHandler) CreateResume(c *gin.Context) {
	var req domain.CreateResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	rec, err := h.resumeUC.CreateResume(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Resume created", rec)
}

// GetResume godoc
// @Summary      Get resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response{data=domain.ResumeRecord}
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
// @Security     BearerAuth
func (h *ResumeHandler) GetResume(c *gin.Context) {
	rec, err := h.resumeUC.GetResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume", rec)
}

// DeleteResume godoc
// @Summary      Delete resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      string  true  "Resume ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
// @Security     BearerAuth
func (h *ResumeHandler) DeleteResume(c *gin.Context) {
	if err := h.resumeUC.DeleteResume(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume deleted", nil)
}

// UpdateSection godoc
// @Summary      Save one resume section
// @Description  meta, personal and summary take an object; education, experience, skills and projects take an array
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id       path      string  true  "Resume ID"
// @Param        section  path      string  true  "meta, personal, summary, education, experience, skills or projects"
// @Success      200      {object}  response.Response{data=domain.ResumeRecord}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /resumes/{id}/{section} [put]
// @Security     BearerAuth
func (h *ResumeHandler) UpdateSection(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSectionBody+1))
	if err != nil || len(payload) > maxSectionBody {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	rec, err := h.resumeUC.UpdateSection(c.Request.Context(), c.Param("id"), domain.ResumeSection(c.Param("section")), payload)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Resume saved", rec)
}

// ExportResume godoc
// @Summary      Export resume as Excel
// @Tags         resumes
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "Resume ID"
// @Success      200  {file}  file
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id}/export [get]
// @Security     BearerAuth
func (h *ResumeHandler) ExportResume(c *gin.Context) {
	data, filename, err := h.resumeUC.ExportResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, response.XLSXContentType, filename, data)
}
