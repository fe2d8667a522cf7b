package backend

import (
	"context"

	"visionpay/models"
)

// API is the license backend's REST surface as seen by this service.
type API interface {
	// Health
	Health(ctx context.Context) (*models.HealthResponse, error)

	// Accounts
	UserExists(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.CreateAccountResponse, error)
	GetUser(ctx context.Context, email string) (*models.UserRecord, error)

	// API keys
	GetAPIKeyByEmail(ctx context.Context, email string) (*models.APIKeyResponse, error)
	GetAPIKeyByLicense(ctx context.Context, licenseCode string) (*models.APIKeyResponse, error)
	UpdateAPIKey(ctx context.Context, req models.UpdateAPIKeyRequest) (*models.MessageResponse, error)

	// Licenses
	CheckLicense(ctx context.Context, licenseCode string) (*models.LicenseInfo, error)
	SendLicenseEmail(ctx context.Context, email string) (*models.SendLicenseEmailResponse, error)

	// Payments
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error)
}
