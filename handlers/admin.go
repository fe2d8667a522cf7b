package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visionpay/models"
	"visionpay/services/admin"
	"visionpay/utils"
)

// AdminHandler backs the license administration screen.
type AdminHandler struct {
	Service admin.AdminService
}

func NewAdminHandler(svc admin.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

func (ah *AdminHandler) ServerHealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ah.Service.ServerHealth(c.Request.Context()))
}

func (ah *AdminHandler) ListLicensesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, ah.Service.ListLicenses(c.Request.Context()))
}

func (ah *AdminHandler) SearchUserHandler(c *gin.Context) {
	user, err := ah.Service.SearchUser(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ah *AdminHandler) GetAPIKeyHandler(c *gin.Context) {
	key, err := ah.Service.GetAPIKey(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, key)
}

// UpdateAPIKeyHandler overwrites the user's API key and returns the reloaded user.
func (ah *AdminHandler) UpdateAPIKeyHandler(c *gin.Context) {
	var req models.AdminAPIKeyUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	user, err := ah.Service.UpdateAPIKey(c.Request.Context(), c.Param("email"), req.NewAPIKey)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ah *AdminHandler) CreateLicenseHandler(c *gin.Context) {
	res, err := ah.Service.CreateLicense(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ah *AdminHandler) ResendLicenseEmailHandler(c *gin.Context) {
	res, err := ah.Service.ResendLicenseEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ah *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := ah.Service.DeleteUser(c.Request.Context(), c.Param("email")); err != nil {
		respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
