package payment

import (
	"context"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
)

const (
	statusSuccess        = "success"
	statusPartialSuccess = "partial_success"
	statusUnconfirmed    = "unconfirmed"
)

// DefaultConfirmationService backs the page the processor returns to. With a
// session lookup it confirms the payment with the processor and fetches the
// license; without one it only echoes the session id.
type DefaultConfirmationService struct {
	backend  backend.API
	sessions SessionLookup
	logger   *zap.Logger
}

// NewConfirmationService accepts a nil sessions for informational mode.
func NewConfirmationService(api backend.API, sessions SessionLookup, logger *zap.Logger) *DefaultConfirmationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultConfirmationService{backend: api, sessions: sessions, logger: logger}
}

func (s *DefaultConfirmationService) Confirm(ctx context.Context, sessionID string) (*models.PaymentConfirmation, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrMissingSession
	}
	if s.sessions == nil {
		return &models.PaymentConfirmation{SessionID: sessionID, Status: statusUnconfirmed}, nil
	}

	sess, err := s.sessions.Lookup(ctx, sessionID)
	if err != nil {
		s.logger.Warn("checkout session lookup failed", zap.String("sessionID", sessionID), zap.Error(err))
		if HTTPStatus(err) == http.StatusBadRequest {
			return nil, newError(http.StatusBadRequest, "Payment not completed or invalid session. Please try again.", err)
		}
		return nil, newError(http.StatusBadGateway, "There was an issue processing your payment. Please contact support.", err)
	}
	if sess.Status != stripe.CheckoutSessionStatusComplete {
		return nil, newError(http.StatusBadRequest, "Payment not completed or invalid session. Please try again.", nil)
	}

	conf := &models.PaymentConfirmation{
		SessionID: sessionID,
		Confirmed: true,
		Status:    statusPartialSuccess,
		Email:     sessionEmail(sess),
	}
	if conf.Email == "" {
		s.logger.Warn("completed checkout session carries no email", zap.String("sessionID", sessionID))
		return conf, nil
	}

	user, err := s.backend.GetUser(ctx, conf.Email)
	if err != nil {
		s.logger.Error("license lookup after payment failed", zap.String("email", conf.Email), zap.Error(err))
		return conf, nil
	}
	if user.LicenseCode != "" {
		conf.LicenseKey = user.LicenseCode
		conf.Status = statusSuccess
	}
	return conf, nil
}

func sessionEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	if sess.CustomerEmail != "" {
		return sess.CustomerEmail
	}
	return sess.Metadata["user_email"]
}
