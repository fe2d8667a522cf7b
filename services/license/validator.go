package license

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
)

const (
	emptyCodeMessage  = "Please enter a license code"
	validationFailure = "Validation failed"
)

type ValidatorService interface {
	Validate(ctx context.Context, code string) models.LicenseValidationResult
}

// DefaultValidatorService checks a license and, when it is valid, looks up the
// API key bound to it. The two lookups are independent backend calls.
type DefaultValidatorService struct {
	backend backend.API
	logger  *zap.Logger
}

func NewValidatorService(api backend.API, logger *zap.Logger) *DefaultValidatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultValidatorService{backend: api, logger: logger}
}

// Validate never returns an error; failures are reported in the result.
func (s *DefaultValidatorService) Validate(ctx context.Context, code string) models.LicenseValidationResult {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.LicenseValidationResult{Error: emptyCodeMessage}
	}

	info, err := s.backend.CheckLicense(ctx, code)
	if err != nil {
		s.logger.Warn("license check failed", zap.Error(err))
		return models.LicenseValidationResult{Error: backend.UserMessage(err, validationFailure)}
	}
	if !info.Valid {
		return models.LicenseValidationResult{}
	}

	key, err := s.backend.GetAPIKeyByLicense(ctx, code)
	if err != nil {
		s.logger.Warn("API key lookup for valid license failed", zap.Error(err))
		return models.LicenseValidationResult{Error: backend.UserMessage(err, validationFailure)}
	}

	return models.LicenseValidationResult{
		IsValid:  true,
		UserInfo: info.LicenseInfo,
		APIKey:   key.APIKey,
	}
}
