package v1

import (
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SetupHandler struct {
	setupUC domain.SetupUsecase
}

func NewSetupHandler(r *gin.RouterGroup, setupUC domain.SetupUsecase) {
	handler := &SetupHandler{setupUC: setupUC}

	setup := r.Group("/setup/:kind")
	{
		setup.GET("", handler.GetState)
		setup.POST("/next", handler.Next)
		setup.POST("/back", handler.Back)
	}
}

// GetState godoc
// @Summary      Get setup wizard position
// @Tags         setup
// @Produce      json
// @Param        kind  path      string  true  "employee or employer"
// @Success      200   {object}  response.Response{data=domain.SetupState}
// @Router       /setup/{kind} [get]
// @Security     BearerAuth
func (h *SetupHandler) GetState(c *gin.Context) {
	state, err := h.setupUC.GetState(c.Request.Context(), domain.SetupKind(c.Param("kind")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Setup state", state)
}

// Next godoc
// @Summary      Submit the current setup step
// @Description  Saves the step data and advances one step. The step index must match the stored one.
// @Tags         setup
// @Accept       json
// @Produce      json
// @Param        kind     path      string                   true  "employee or employer"
// @Param        request  body      domain.SetupStepRequest  true  "Step data"
// @Success      200      {object}  response.Response{data=domain.SetupState}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /setup/{kind}/next [post]
// @Security     BearerAuth
func (h *SetupHandler) Next(c *gin.Context) {
	var req domain.SetupStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	state, err := h.setupUC.Next(c.Request.Context(), domain.SetupKind(c.Param("kind")), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Step saved", state)
}

// Back godoc
// @Summary      Go back one setup step
// @Tags         setup
// @Produce      json
// @Param        kind  path      string  true  "employee or employer"
// @Success      200   {object}  response.Response{data=domain.SetupState}
// @Router       /setup/{kind}/back [post]
// @Security     BearerAuth
func (h *SetupHandler) Back(c *gin.Context) {
	state, err := h.setupUC.Back(c.Request.Context(), domain.SetupKind(c.Param("kind")))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Setup state", state)
}
