package v1

import (
	"net/http"

	"career-portal-backend/internal/delivery/http/response"
	"career-portal-backend/internal/domain"
	"career-portal-backend/pkg/antivirus"
	"career-portal-backend/pkg/apperror"
	"career-portal-backend/pkg/media"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountUC domain.AccountUsecase
	uploads   uploads
}

func NewAccountHandler(r *gin.RouterGroup, accountUC domain.AccountUsecase, scanner antivirus.Scanner) {
	handler := &AccountHandler{accountUC: accountUC, uploads: uploads{scanner: scanner}}

	account := r.Group("/account")
	{
		account.POST("", handler.EnsureAccount)
		account.GET("", handler.GetAccount)
		account.PATCH("", handler.UpdateAccount)
		account.POST("/photo", handler.UploadPhoto)
	}
}

// EnsureAccount godoc
// @Summary      Create account on first sign-in
// @Description  Creates the basic account record from the token claims if it does not exist yet
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BasicAccountRecord}
// @Failure      401  {object}  response.Response
// @Router       /account [post]
// @Security     BearerAuth
func (h *AccountHandler) EnsureAccount(c *gin.Context) {
	acc, err := h.accountUC.EnsureAccount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account ready", acc)
}

// GetAccount godoc
// @Summary      Get account
// @Tags         account
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.BasicAccountRecord}
// @Failure      401  {object}  response.Response
// @Router       /account [get]
// @Security     BearerAuth
func (h *AccountHandler) GetAccount(c *gin.Context) {
	acc, err := h.accountUC.GetAccount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account", acc)
}

// UpdateAccount godoc
// @Summary      Update account fields
// @Description  Only the fields present in the body are changed
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        request  body      domain.UpdateAccountRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.BasicAccountRecord}
// @Failure      400      {object}  response.Response
// @Router       /account [patch]
// @Security     BearerAuth
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req domain.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	acc, err := h.accountUC.UpdateAccount(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account updated", acc)
}

// UploadPhoto godoc
// @Summary      Upload profile photo
// @Description  JPEG, PNG or WebP up to 5MB; stored resized as JPEG
// @Tags         account
// @Accept       multipart/form-data
// @Produce      json
// @Param        photo  formData  file  true  "Image file"
// @Success      200    {object}  response.Response{data=domain.BasicAccountRecord}
// @Failure      400    {object}  response.Response
// @Failure      503    {object}  response.Response
// @Router       /account/photo [post]
// @Security     BearerAuth
func (h *AccountHandler) UploadPhoto(c *gin.Context) {
	_, data, err := h.uploads.read(c, "photo", media.MaxPhotoBytes)
	if err != nil {
		c.Error(err)
		return
	}
	acc, err := h.accountUC.UploadPhoto(c.Request.Context(), data)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Photo updated", acc)
}
