package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"visionpay/config"
	"visionpay/handlers"
	"visionpay/middleware"
	"visionpay/routes"
	"visionpay/services/admin"
	"visionpay/services/backend"
	"visionpay/services/license"
	"visionpay/services/payment"
	"visionpay/services/signup"
	"visionpay/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// License backend client, shared by every service.
	api := backend.NewClient(cfg.APIBaseURL, &http.Client{}, logger.Named("backend"))

	// Payments.
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripePublishableKey, logger.Named("stripe"))
	checkoutService := payment.NewCheckoutService(api, gateway, payment.CheckoutOptions{
		PriceID:    cfg.StripePriceID,
		AppBaseURL: cfg.AppBaseURL,
		DemoMode:   cfg.DemoMode,
	}, logger.Named("checkout"))

	var lookup payment.SessionLookup
	if gateway.CanLookup() {
		lookup = gateway
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set; payment success page will not confirm sessions")
	}
	confirmationService := payment.NewConfirmationService(api, lookup, logger.Named("confirm"))

	// Signup sessions.
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var store signup.SessionStore
	if cfg.RedisAddr != "" {
		client, err := utils.InitSessionCache()
		if err != nil {
			logger.Fatal("main: failed to initialize session cache", zap.Error(err))
		}
		store = signup.NewRedisStore(client, sessionTTL, logger.Named("sessions"))
	} else {
		store = signup.NewMemoryStore(sessionTTL)
	}
	signupService := signup.NewSignupService(api, checkoutService, store, cfg.CollectAPIKey, logger.Named("signup"))

	validatorService := license.NewValidatorService(api, logger.Named("license"))
	adminService := admin.NewAdminService(api, logger.Named("admin"))

	signupHandler := handlers.NewSignupHandler(signupService)
	successHandler := handlers.NewSuccessHandler(confirmationService)
	licenseHandler := handlers.NewLicenseHandler(validatorService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StartSignupHandler:    signupHandler.StartSession,
		GetSignupHandler:      signupHandler.GetSession,
		UpdateSignupHandler:   signupHandler.UpdateSession,
		ContinueSignupHandler: signupHandler.ContinueSession,
		BackSignupHandler:     signupHandler.BackSession,
		ResetSignupHandler:    signupHandler.ResetSession,

		PaymentSuccessHandler: successHandler.PaymentSuccess,

		ValidateLicenseHandler: licenseHandler.ValidateLicense,

		AdminHandler: adminHandler,
	}

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, time.Minute, func(ctx context.Context) error {
		_, err := api.Health(ctx)
		return err
	}, utils.SessionCacheClient)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (backend %s, demo mode %t)", srv.Addr, cfg.APIBaseURL, cfg.DemoMode)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stopMonitor()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if utils.SessionCacheClient != nil {
		_ = utils.SessionCacheClient.Close()
	}
	_ = logger.Sync()

	logger.Sugar().Info("main: server stopped gracefully")
}
