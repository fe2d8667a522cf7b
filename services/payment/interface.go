package payment

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	"visionpay/models"
)

// CheckoutService starts payment for a completed signup form.
type CheckoutService interface {
	StartCheckout(ctx context.Context, form models.SignupFormData) (*models.CheckoutOutcome, error)
}

// ConfirmationService finalizes what the success page shows.
type ConfirmationService interface {
	Confirm(ctx context.Context, sessionID string) (*models.PaymentConfirmation, error)
}

// Redirector turns a checkout session id into somewhere the browser can go.
type Redirector interface {
	Redirect(ctx context.Context, sessionID string) (*models.Redirect, error)
}

// SessionLookup reads a checkout session from the processor.
type SessionLookup interface {
	Lookup(ctx context.Context, sessionID string) (*stripe.CheckoutSession, error)
}
