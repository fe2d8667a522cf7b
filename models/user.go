package models

// UserRecord is a user as stored by the license backend.
type UserRecord struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	LicenseCode string `json:"license_code,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type CreateAccountRequest struct {
	FirstName   string `schema:"first_name"`
	LastName    string `schema:"last_name"`
	CompanyName string `schema:"company_name"`
	Email       string `schema:"email"`
}

type CreateAccountResponse struct {
	Message    string `json:"message"`
	Email      string `json:"email"`
	UserID     int    `json:"user_id,omitempty"`
	LicenseKey string `json:"license_key,omitempty"`
}

type UserExistsResponse struct {
	Exists bool `json:"exists"`
}

type UpdateAPIKeyRequest struct {
	Email     string `schema:"email"`
	NewAPIKey string `schema:"new_api_key"`
}

// MessageResponse covers the backend endpoints that answer with a message and an email.
type MessageResponse struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}
