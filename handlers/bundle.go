package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Signup wizard endpoints
	StartSignupHandler    gin.HandlerFunc
	GetSignupHandler      gin.HandlerFunc
	UpdateSignupHandler   gin.HandlerFunc
	ContinueSignupHandler gin.HandlerFunc
	BackSignupHandler     gin.HandlerFunc
	ResetSignupHandler    gin.HandlerFunc

	// Payment return
	PaymentSuccessHandler gin.HandlerFunc

	// License endpoints
	ValidateLicenseHandler gin.HandlerFunc

	// Admin endpoints
	AdminHandler *AdminHandler
}
