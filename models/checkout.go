package models

// CheckoutSessionRequest is the form sent to the backend's create-checkout-session endpoint.
type CheckoutSessionRequest struct {
	PriceID     string `schema:"price_id"`
	UserEmail   string `schema:"user_email"`
	SuccessURL  string `schema:"success_url"`
	CancelURL   string `schema:"cancel_url"`
	FirstName   string `schema:"first_name"`
	LastName    string `schema:"last_name"`
	CompanyName string `schema:"company_name"`
	APIKey      string `schema:"mistral_api_key,omitempty"`
}

type CheckoutSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message,omitempty"`
}

type CheckoutMode string

const (
	CheckoutModeRedirect CheckoutMode = "redirect"
	CheckoutModeTest     CheckoutMode = "test"
	CheckoutModeDemo     CheckoutMode = "demo"
)

// Redirect tells the browser where to finish payment. URL is empty when the
// browser has to resolve the hosted page itself with the publishable key.
type Redirect struct {
	URL            string `json:"url,omitempty"`
	SessionID      string `json:"sessionId"`
	PublishableKey string `json:"publishableKey,omitempty"`
}

type CheckoutOutcome struct {
	Mode       CheckoutMode `json:"mode"`
	LicenseKey string       `json:"licenseKey,omitempty"`
	Redirect   *Redirect    `json:"redirect,omitempty"`
}

// PaymentConfirmation is what the success page shows after the processor redirects back.
type PaymentConfirmation struct {
	SessionID  string `json:"sessionId"`
	Confirmed  bool   `json:"confirmed"`
	Status     string `json:"status,omitempty"`
	Email      string `json:"email,omitempty"`
	LicenseKey string `json:"licenseKey,omitempty"`
}
