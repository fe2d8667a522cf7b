package models

import (
	"fmt"
	"strings"
	"time"
)

// WizardStep is the ordinal position of a signup wizard.
type WizardStep int

const (
	StepBasicInfo WizardStep = iota + 1
	StepAPIKey
	StepPayment
	StepSuccess
)

var stepNames = map[WizardStep]string{
	StepBasicInfo: "basic_info",
	StepAPIKey:    "api_key",
	StepPayment:   "payment",
	StepSuccess:   "success",
}

func (s WizardStep) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s WizardStep) MarshalText() ([]byte, error) {
	if _, ok := stepNames[s]; !ok {
		return nil, fmt.Errorf("unknown wizard step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *WizardStep) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for step, n := range stepNames {
		if n == name {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown wizard step %q", string(text))
}

// SignupFormData accumulates what the user entered across the wizard steps.
type SignupFormData struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	APIKey      string `json:"apiKey,omitempty"`
}

// SignupFormUpdate is a partial update; nil fields are left untouched.
type SignupFormUpdate struct {
	FirstName   *string `json:"firstName,omitempty"`
	LastName    *string `json:"lastName,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Email       *string `json:"email,omitempty"`
	APIKey      *string `json:"apiKey,omitempty"`
}

// SignupSession is the server-side record of one signup attempt.
type SignupSession struct {
	ID           string         `json:"id"`
	Steps        []WizardStep   `json:"steps"`
	Position     int            `json:"position"`
	FormData     SignupFormData `json:"formData"`
	AccountEmail string         `json:"accountEmail,omitempty"`
	LicenseKey   string         `json:"licenseKey,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// SignupSessionView is what the wizard endpoints return to the browser.
type SignupSessionView struct {
	ID         string         `json:"id"`
	Step       WizardStep     `json:"step"`
	Steps      []WizardStep   `json:"steps"`
	FormData   SignupFormData `json:"formData"`
	LicenseKey string         `json:"licenseKey,omitempty"`
	Redirect   *Redirect      `json:"redirect,omitempty"`
}
