package payment

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
)

const (
	testModeSentinel = "TEST MODE"

	TestLicenseKey = "TEST_LICENSE_KEY"
	DemoLicenseKey = "DEMO_LICENSE_KEY"
)

// CheckoutOptions are the process-wide settings the checkout needs.
type CheckoutOptions struct {
	PriceID    string
	AppBaseURL string
	DemoMode   bool
}

// DefaultCheckoutService asks the backend for a checkout session and then
// either redirects to the processor or, in test/demo mode, issues the
// license directly.
type DefaultCheckoutService struct {
	backend    backend.API
	redirector Redirector
	opts       CheckoutOptions
	logger     *zap.Logger
}

func NewCheckoutService(api backend.API, redirector Redirector, opts CheckoutOptions, logger *zap.Logger) *DefaultCheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.AppBaseURL = strings.TrimRight(opts.AppBaseURL, "/")
	return &DefaultCheckoutService{
		backend:    api,
		redirector: redirector,
		opts:       opts,
		logger:     logger,
	}
}

// StartCheckout tries, in order: the backend's test mode, the configured demo
// mode, then a real processor redirect.
func (s *DefaultCheckoutService) StartCheckout(ctx context.Context, form models.SignupFormData) (*models.CheckoutOutcome, error) {
	resp, err := s.backend.CreateCheckoutSession(ctx, s.sessionRequest(form))
	if err != nil {
		s.logger.Error("checkout session creation failed", zap.String("email", form.Email), zap.Error(err))
		return nil, newError(http.StatusBadGateway, backend.UserMessage(err, "Payment failed"), err)
	}

	if strings.Contains(resp.Message, testModeSentinel) {
		s.logger.Info("backend reported test mode, issuing license directly", zap.String("email", form.Email))
		return s.issueDirectly(ctx, form.Email, models.CheckoutModeTest, TestLicenseKey,
			"Failed to process test mode license. Please try again.")
	}

	if s.opts.DemoMode {
		s.logger.Info("demo mode enabled, skipping processor checkout", zap.String("email", form.Email))
		return s.issueDirectly(ctx, form.Email, models.CheckoutModeDemo, DemoLicenseKey,
			"Failed to process demo license. Please try again.")
	}

	if resp.SessionID == "" {
		return nil, ErrNoSessionID
	}
	if s.redirector == nil {
		return nil, ErrNotConfigured
	}

	redirect, err := s.redirector.Redirect(ctx, resp.SessionID)
	if err != nil {
		s.logger.Error("processor redirect failed", zap.String("sessionID", resp.SessionID), zap.Error(err))
		return nil, err
	}
	return &models.CheckoutOutcome{Mode: models.CheckoutModeRedirect, Redirect: redirect}, nil
}

func (s *DefaultCheckoutService) issueDirectly(ctx context.Context, email string, mode models.CheckoutMode, placeholder, failure string) (*models.CheckoutOutcome, error) {
	resp, err := s.backend.SendLicenseEmail(ctx, email)
	if err != nil {
		s.logger.Error("license issuance failed", zap.String("email", email), zap.String("mode", string(mode)), zap.Error(err))
		return nil, newError(http.StatusBadGateway, failure, err)
	}
	key := resp.LicenseKey
	if key == "" {
		key = placeholder
	}
	return &models.CheckoutOutcome{Mode: mode, LicenseKey: key}, nil
}

// The backend appends ?session_id={CHECKOUT_SESSION_ID} to the success URL itself.
func (s *DefaultCheckoutService) sessionRequest(form models.SignupFormData) models.CheckoutSessionRequest {
	return models.CheckoutSessionRequest{
		PriceID:     s.opts.PriceID,
		UserEmail:   form.Email,
		SuccessURL:  s.opts.AppBaseURL + "/success",
		CancelURL:   s.opts.AppBaseURL + "/",
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		CompanyName: form.CompanyName,
		APIKey:      form.APIKey,
	}
}
