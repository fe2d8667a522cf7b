package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"visionpay/models"
	"visionpay/services/license"
	"visionpay/utils"
)

type LicenseHandler struct {
	Validator license.ValidatorService
}

func NewLicenseHandler(v license.ValidatorService) *LicenseHandler {
	return &LicenseHandler{Validator: v}
}

// ValidateLicense always answers 200; an invalid or unreachable license is
// reported in the body.
func (h *LicenseHandler) ValidateLicense(c *gin.Context) {
	var req models.LicenseValidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	c.JSON(http.StatusOK, h.Validator.Validate(c.Request.Context(), req.LicenseCode))
}
