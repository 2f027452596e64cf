package v1

import (
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("/search", handler.Search)
		jobs.GET("/searches", handler.RecentSearches)
		jobs.POST("/export", handler.Export)
	}
}

// Search godoc
// @Summary      Search job listings
// @Description  Aggregates listings from the job boards. Falls back to sample listings when the scraper is down.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        request  body      domain.JobSearchParams  true  "Search parameters"
// @Success      200      {object}  response.Response{data=domain.JobSearchResult}
// @Failure      400      {object}  response.Response
// @Router       /jobs/search [post]
// @Security     BearerAuth
func (h *JobHandler) Search(c *gin.Context) {
	var req domain.JobSearchParams
	if !bind(c, &req) {
		return
	}
	res, err := h.jobUC.Search(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Jobs", res)
}

// RecentSearches godoc
// @Summary      Recent job searches
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobSearchRecord}
// @Router       /jobs/searches [get]
// @Security     BearerAuth
func (h *JobHandler) RecentSearches(c *gin.Context) {
	recs, err := h.jobUC.RecentSearches(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recent searches", recs)
}

// Export godoc
// @Summary      Export job search results as Excel
// @Tags         jobs
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        request  body  domain.JobSearchParams  true  "Search parameters"
// @Success      200      {file}  file
// @Router       /jobs/export [post]
// @Security     BearerAuth
func (h *JobHandler) Export(c *gin.Context) {
	var req domain.JobSearchParams
	if !bind(c, &req) {
		return
	}
	data, filename, err := h.jobUC.ExportSearch(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Attachment(c, response.XLSXContentType, filename, data)
}
