package payment

import (
	"context"
	"errors"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"

	"visionpay/models"
)

type checkoutSessionGetter interface {
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeGateway resolves hosted checkout pages and reads finished sessions.
// Without a secret key it can only hand the publishable key to the browser.
type StripeGateway struct {
	sessions       checkoutSessionGetter
	publishableKey string
	logger         *zap.Logger
}

func NewStripeGateway(secretKey, publishableKey string, logger *zap.Logger) *StripeGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &StripeGateway{publishableKey: publishableKey, logger: logger}
	if secretKey != "" {
		g.sessions = client.New(secretKey, nil).CheckoutSessions
	} else if publishableKey == "" {
		logger.Warn("Stripe keys are not configured; real checkouts will fail")
	}
	return g
}

// CanLookup reports whether sessions can be read server-side.
func (g *StripeGateway) CanLookup() bool {
	return g != nil && g.sessions != nil
}

func (g *StripeGateway) Lookup(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error) {
	if !g.CanLookup() {
		return nil, ErrNotConfigured
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return nil, processorError(err)
	}
	return sess, nil
}

func (g *StripeGateway) Redirect(ctx context.Context, sessionID string) (*models.Redirect, error) {
	if !g.CanLookup() {
		if g.publishableKey == "" {
			return nil, ErrNotConfigured
		}
		// The browser finishes with Stripe.js.
		return &models.Redirect{SessionID: sessionID, PublishableKey: g.publishableKey}, nil
	}

	sess, err := g.Lookup(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status == stripe.CheckoutSessionStatusExpired {
		return nil, newError(http.StatusConflict, "This checkout session has expired. Please try again.", nil)
	}
	if sess.URL == "" {
		return nil, newError(http.StatusBadGateway, "The payment processor did not return a checkout page.", nil)
	}
	g.logger.Debug("resolved hosted checkout", zap.String("sessionID", sessionID))
	return &models.Redirect{URL: sess.URL, SessionID: sessionID, PublishableKey: g.publishableKey}, nil
}

// processorError keeps Stripe's own message so it can be shown verbatim.
func processorError(err error) *Error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		status := http.StatusBadGateway
		if stripeErr.HTTPStatusCode >= 400 && stripeErr.HTTPStatusCode < 500 {
			status = http.StatusBadRequest
		}
		msg := stripeErr.Msg
		if msg == "" {
			msg = "Payment processor error"
		}
		return newError(status, msg, err)
	}
	return newError(http.StatusBadGateway, err.Error(), err)
}
