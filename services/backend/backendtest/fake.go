// Package backendtest provides a scriptable in-memory stand-in for backend.API.
package backendtest

import (
	"context"
	"sync"

	"visionpay/models"
	"visionpay/services/backend"
)

// Fake implements backend.API. Each method delegates to the matching Func
// field when set and otherwise returns a zero-value success. Calls are
// counted by method name.
type Fake struct {
	HealthFunc                func(ctx context.Context) (*models.HealthResponse, error)
	UserExistsFunc            func(ctx context.Context, email string) (bool, error)
	CreateAccountFunc         func(ctx context.Context, req models.CreateAccountRequest) (*models.CreateAccountResponse, error)
	GetUserFunc               func(ctx context.Context, email string) (*models.UserRecord, error)
	GetAPIKeyByEmailFunc      func(ctx context.Context, email string) (*models.APIKeyResponse, error)
	GetAPIKeyByLicenseFunc    func(ctx context.Context, code string) (*models.APIKeyResponse, error)
	UpdateAPIKeyFunc          func(ctx context.Context, req models.UpdateAPIKeyRequest) (*models.MessageResponse, error)
	CheckLicenseFunc          func(ctx context.Context, code string) (*models.LicenseInfo, error)
	SendLicenseEmailFunc      func(ctx context.Context, email string) (*models.SendLicenseEmailResponse, error)
	CreateCheckoutSessionFunc func(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error)

	mu    sync.Mutex
	calls map[string]int
}

var _ backend.API = (*Fake)(nil)

func (f *Fake) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
}

// Calls returns how many times the named method was invoked.
func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// TotalCalls returns the number of calls across all methods.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *Fake) Health(ctx context.Context) (*models.HealthResponse, error) {
	f.record("Health")
	if f.HealthFunc != nil {
		return f.HealthFunc(ctx)
	}
	return &models.HealthResponse{Message: "VisionPay License Server is running"}, nil
}

func (f *Fake) UserExists(ctx context.Context, email string) (bool, error) {
	f.record("UserExists")
	if f.UserExistsFunc != nil {
		return f.UserExistsFunc(ctx, email)
	}
	return false, nil
}

func (f *Fake) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (*models.CreateAccountResponse, error) {
	f.record("CreateAccount")
	if f.CreateAccountFunc != nil {
		return f.CreateAccountFunc(ctx, req)
	}
	return &models.CreateAccountResponse{Message: "Account and license key created successfully", Email: req.Email}, nil
}

func (f *Fake) GetUser(ctx context.Context, email string) (*models.UserRecord, error) {
	f.record("GetUser")
	if f.GetUserFunc != nil {
		return f.GetUserFunc(ctx, email)
	}
	return &models.UserRecord{Email: email}, nil
}

func (f *Fake) GetAPIKeyByEmail(ctx context.Context, email string) (*models.APIKeyResponse, error) {
	f.record("GetAPIKeyByEmail")
	if f.GetAPIKeyByEmailFunc != nil {
		return f.GetAPIKeyByEmailFunc(ctx, email)
	}
	return &models.APIKeyResponse{Email: email}, nil
}

func (f *Fake) GetAPIKeyByLicense(ctx context.Context, code string) (*models.APIKeyResponse, error) {
	f.record("GetAPIKeyByLicense")
	if f.GetAPIKeyByLicenseFunc != nil {
		return f.GetAPIKeyByLicenseFunc(ctx, code)
	}
	return &models.APIKeyResponse{}, nil
}

func (f *Fake) UpdateAPIKey(ctx context.Context, req models.UpdateAPIKeyRequest) (*models.MessageResponse, error) {
	f.record("UpdateAPIKey")
	if f.UpdateAPIKeyFunc != nil {
		return f.UpdateAPIKeyFunc(ctx, req)
	}
	return &models.MessageResponse{Message: "API key updated successfully", Email: req.Email}, nil
}

func (f *Fake) CheckLicense(ctx context.Context, code string) (*models.LicenseInfo, error) {
	f.record("CheckLicense")
	if f.CheckLicenseFunc != nil {
		return f.CheckLicenseFunc(ctx, code)
	}
	return &models.LicenseInfo{}, nil
}

func (f *Fake) SendLicenseEmail(ctx context.Context, email string) (*models.SendLicenseEmailResponse, error) {
	f.record("SendLicenseEmail")
	if f.SendLicenseEmailFunc != nil {
		return f.SendLicenseEmailFunc(ctx, email)
	}
	return &models.SendLicenseEmailResponse{Message: "License key sent successfully", Email: email}, nil
}

func (f *Fake) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.CheckoutSessionResponse, error) {
	f.record("CreateCheckoutSession")
	if f.CreateCheckoutSessionFunc != nil {
		return f.CreateCheckoutSessionFunc(ctx, req)
	}
	return &models.CheckoutSessionResponse{}, nil
}
