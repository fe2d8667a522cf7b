package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/signup"
	"visionpay/utils"
)

// SignupHandler exposes the signup wizard.
type SignupHandler struct {
	Service signup.SignupService
}

func NewSignupHandler(svc signup.SignupService) *SignupHandler {
	return &SignupHandler{Service: svc}
}

// StartSession creates a wizard at its first step.
func (h *SignupHandler) StartSession(c *gin.Context) {
	view, err := h.Service.Start(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SignupHandler) GetSession(c *gin.Context) {
	view, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdateSession merges the provided form fields into the session.
func (h *SignupHandler) UpdateSession(c *gin.Context) {
	var update models.SignupFormUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid form data", err.Error())
		return
	}
	view, err := h.Service.UpdateFormData(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// ContinueSession submits the current step. A response with a redirect means
// the browser has to go to the payment page.
func (h *SignupHandler) ContinueSession(c *gin.Context) {
	id := c.Param("id")
	view, err := h.Service.Continue(c.Request.Context(), id)
	if err != nil {
		utils.LoggerFrom(c).Info("signup step rejected", zap.String("sessionID", id), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SignupHandler) BackSession(c *gin.Context) {
	view, err := h.Service.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SignupHandler) ResetSession(c *gin.Context) {
	view, err := h.Service.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
