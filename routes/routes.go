package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"visionpay/config"
	"visionpay/handlers"
	"visionpay/utils"
)

// RegisterSignupRoutes registers the signup wizard endpoints.
func RegisterSignupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/signup/sessions")
	{
		api.POST("", hb.StartSignupHandler)
		api.GET("/:id", hb.GetSignupHandler)
		api.PATCH("/:id", hb.UpdateSignupHandler)
		api.POST("/:id/continue", hb.ContinueSignupHandler)
		api.POST("/:id/back", hb.BackSignupHandler)
		api.POST("/:id/reset", hb.ResetSignupHandler)
	}
}

// RegisterPaymentRoutes registers the page Stripe returns to after checkout.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/success", hb.PaymentSuccessHandler)
}

func RegisterLicenseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/license")
	{
		api.POST("/validate", hb.ValidateLicenseHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "VisionPay signup service is running",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterAdminRoutes sets up endpoints for admin operations. Access control
// is left to the license backend and the deployment.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.GET("/health", hb.AdminHandler.ServerHealthHandler)
		adminGroup.GET("/licenses", hb.AdminHandler.ListLicensesHandler)
		adminGroup.GET("/users/:email", hb.AdminHandler.SearchUserHandler)
		adminGroup.GET("/users/:email/api-key", hb.AdminHandler.GetAPIKeyHandler)
		adminGroup.PUT("/users/:email/api-key", hb.AdminHandler.UpdateAPIKeyHandler)
		adminGroup.POST("/users/:email/license", hb.AdminHandler.CreateLicenseHandler)
		adminGroup.POST("/users/:email/license/email", hb.AdminHandler.ResendLicenseEmailHandler)
		adminGroup.DELETE("/users/:email", hb.AdminHandler.DeleteUserHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  config.AllowedOrigins(),
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSignupRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterLicenseRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
