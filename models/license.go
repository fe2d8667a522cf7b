package models

type LicenseInfo struct {
	Valid       bool        `json:"valid"`
	LicenseInfo *UserRecord `json:"license_info,omitempty"`
}

type APIKeyResponse struct {
	Email      string `json:"email,omitempty"`
	LicenseKey string `json:"license_key,omitempty"`
	APIKey     string `json:"api_key"`
}

type SendLicenseEmailRequest struct {
	Email string `schema:"email"`
}

type SendLicenseEmailResponse struct {
	Message    string `json:"message"`
	Email      string `json:"email"`
	LicenseKey string `json:"license_key,omitempty"`
}

// LicenseValidationResult is computed per validation and never stored.
type LicenseValidationResult struct {
	IsValid  bool        `json:"isValid"`
	UserInfo *UserRecord `json:"userInfo,omitempty"`
	APIKey   string      `json:"apiKey,omitempty"`
	Error    string      `json:"error,omitempty"`
}

type HealthResponse struct {
	Message string `json:"message"`
}

type LicenseValidationRequest struct {
	LicenseCode string `json:"licenseCode"`
}
