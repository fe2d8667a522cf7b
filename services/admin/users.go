package admin

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
)

const (
	healthFailure    = "Server connection failed"
	listLicensesNote = "Listing all licenses is not supported by the license server."
)

func (a *DefaultAdminService) ServerHealth(ctx context.Context) models.ServerHealth {
	resp, err := a.backend.Health(ctx)
	if err != nil {
		a.logger.Warn("license server health check failed", zap.Error(err))
		return models.ServerHealth{Message: healthFailure}
	}
	return models.ServerHealth{Healthy: true, Message: resp.Message}
}

// SearchUser does not tell a missing user apart from a failed lookup.
func (a *DefaultAdminService) SearchUser(ctx context.Context, email string) (*models.UserRecord, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	user, err := a.backend.GetUser(ctx, email)
	if err != nil {
		a.logger.Info("admin user search failed", zap.String("email", email), zap.Error(err))
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetAPIKey shows the key currently stored for a user. Lookup failures are
// reported the same way as SearchUser.
func (a *DefaultAdminService) GetAPIKey(ctx context.Context, email string) (*models.APIKeyResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrUserNotFound
	}
	key, err := a.backend.GetAPIKeyByEmail(ctx, email)
	if err != nil {
		a.logger.Info("admin API key lookup failed", zap.String("email", email), zap.Error(err))
		return nil, ErrUserNotFound
	}
	return key, nil
}

// UpdateAPIKey overwrites the stored key and returns the user as the backend
// now reports it.
func (a *DefaultAdminService) UpdateAPIKey(ctx context.Context, email, newKey string) (*models.UserRecord, error) {
	email, newKey = strings.TrimSpace(email), strings.TrimSpace(newKey)
	if email == "" || newKey == "" {
		return nil, ErrBlankInput
	}

	if _, err := a.backend.UpdateAPIKey(ctx, models.UpdateAPIKeyRequest{Email: email, NewAPIKey: newKey}); err != nil {
		a.logger.Error("admin API key update failed", zap.String("email", email), zap.Error(err))
		return nil, &ActionError{Message: backend.UserMessage(err, "Failed to update API key"), Err: err}
	}
	a.logger.Info("admin updated API key", zap.String("email", email))
	return a.refetch(ctx, email)
}

// CreateLicense relies on the backend issuing a key when the user has none.
func (a *DefaultAdminService) CreateLicense(ctx context.Context, email string) (*models.AdminLicenseResult, error) {
	resp, err := a.sendLicense(ctx, email, "Failed to create license key")
	if err != nil {
		return nil, err
	}
	user, err := a.refetch(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	// The send endpoint does not always echo the key; the user record has it.
	key := resp.LicenseKey
	if key == "" {
		key = user.LicenseCode
	}
	return &models.AdminLicenseResult{
		Message:    "License key created and sent",
		LicenseKey: key,
		User:       user,
	}, nil
}

func (a *DefaultAdminService) ResendLicenseEmail(ctx context.Context, email string) (*models.AdminLicenseResult, error) {
	resp, err := a.sendLicense(ctx, email, "Failed to send license email")
	if err != nil {
		return nil, err
	}
	return &models.AdminLicenseResult{Message: "License email sent", LicenseKey: resp.LicenseKey}, nil
}

func (a *DefaultAdminService) DeleteUser(_ context.Context, email string) error {
	a.logger.Info("admin delete requested but not supported", zap.String("email", email))
	return ErrUnavailable
}

func (a *DefaultAdminService) ListLicenses(context.Context) models.LicenseList {
	return models.LicenseList{Licenses: []models.UserRecord{}, Note: listLicensesNote}
}

func (a *DefaultAdminService) sendLicense(ctx context.Context, email, failure string) (*models.SendLicenseEmailResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrBlankInput
	}
	resp, err := a.backend.SendLicenseEmail(ctx, email)
	if err != nil {
		a.logger.Error("admin license email failed", zap.String("email", email), zap.Error(err))
		return nil, &ActionError{Message: backend.UserMessage(err, failure), Err: err}
	}
	return resp, nil
}

func (a *DefaultAdminService) refetch(ctx context.Context, email string) (*models.UserRecord, error) {
	user, err := a.backend.GetUser(ctx, email)
	if err != nil {
		a.logger.Warn("admin refetch failed", zap.String("email", email), zap.Error(err))
		return nil, &ActionError{Message: "Action succeeded but the user could not be reloaded", Err: err}
	}
	return user, nil
}
