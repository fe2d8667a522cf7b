package admin

import (
	"context"

	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
)

type AdminService interface {
	ServerHealth(ctx context.Context) models.ServerHealth
	SearchUser(ctx context.Context, email string) (*models.UserRecord, error)
	GetAPIKey(ctx context.Context, email string) (*models.APIKeyResponse, error)
	UpdateAPIKey(ctx context.Context, email, newKey string) (*models.UserRecord, error)
	CreateLicense(ctx context.Context, email string) (*models.AdminLicenseResult, error)
	ResendLicenseEmail(ctx context.Context, email string) (*models.AdminLicenseResult, error)
	DeleteUser(ctx context.Context, email string) error
	ListLicenses(ctx context.Context) models.LicenseList
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	backend backend.API
	logger  *zap.Logger
}

func NewAdminService(api backend.API, logger *zap.Logger) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAdminService{backend: api, logger: logger}
}
