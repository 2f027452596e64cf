package v1

import (
	"net/http"
	"strconv"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

type addSkillRequest struct {
	Skill string `json:"skill"`
}

func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	profile := r.Group("/profile")
	{
		profile.GET("", handler.GetProfile)
		profile.PUT("", handler.SaveProfile)
		profile.POST("/skills", handler.AddSkill)
		profile.DELETE("/:list/:index", handler.RemoveEntry)
	}
}

// GetProfile godoc
// @Summary      Get merged profile
// @Description  Merges the account record with the detailed profile. mode=edit returns one blank row for empty lists.
// @Tags         profile
// @Produce      json
// @Param        mode  query     string  false  "display (default) or edit"
// @Success      200   {object}  response.Response{data=domain.ResolvedProfile}
// @Failure      401   {object}  response.Response
// @Router       /profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	policy := domain.DisplayPolicy
	switch c.DefaultQuery("mode", "display") {
	case "display":
	case "edit":
		policy = domain.EditPolicy
	default:
		c.Error(apperror.BadRequest("mode must be display or edit"))
		return
	}

	p, err := h.profileUC.GetProfile(c.Request.Context(), policy)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile", p)
}

// SaveProfile godoc
// @Summary      Save profile
// @Description  Replaces the detailed profile lists and syncs identity fields onto the account
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      domain.DetailedProfileRecord  true  "Profile"
// @Success      200      {object}  response.Response{data=domain.ResolvedProfile}
// @Failure      400      {object}  response.Response
// @Router       /profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req domain.DetailedProfileRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	p, err := h.profileUC.SaveProfile(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", p)
}

// AddSkill godoc
// @Summary      Add a skill
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request  body      addSkillRequest  true  "Skill"
// @Success      200      {object}  response.Response{data=domain.ResolvedProfile}
// @Failure      409      {object}  response.Response
// @Router       /profile/skills [post]
// @Security     BearerAuth
func (h *ProfileHandler) AddSkill(c *gin.Context) {
	var req addSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	p, err := h.profileUC.AddSkill(c.Request.Context(), req.Skill)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill added", p)
}

// RemoveEntry godoc
// @Summary      Remove a list entry
// @Tags         profile
// @Produce      json
// @Param        list   path      string  true  "education, experience, certifications or skills"
// @Param        index  path      int     true  "Zero-based position"
// @Success      200    {object}  response.Response{data=domain.ResolvedProfile}
// @Failure      404    {object}  response.Response
// @Router       /profile/{list}/{index} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) RemoveEntry(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid index"))
		return
	}
	p, err := h.profileUC.RemoveEntry(c.Request.Context(), domain.ProfileList(c.Param("list")), index)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Entry removed", p)
}
