package models

// LicenseList is the admin license overview. The backend has no list endpoint,
// so Licenses is always empty and Note says why.
type LicenseList struct {
	Licenses []UserRecord `json:"licenses"`
	Note     string       `json:"note,omitempty"`
}

type AdminAPIKeyUpdate struct {
	NewAPIKey string `json:"newApiKey"`
}

// AdminLicenseResult is returned after a license was created or re-sent.
type AdminLicenseResult struct {
	Message    string      `json:"message"`
	LicenseKey string      `json:"licenseKey,omitempty"`
	User       *UserRecord `json:"user,omitempty"`
}

type ServerHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message"`
}
