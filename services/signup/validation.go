package signup

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"visionpay/models"
)

type basicInfo struct {
	FirstName   string `validate:"required"`
	LastName    string `validate:"required"`
	CompanyName string `validate:"required"`
	Email       string `validate:"required,email"`
}

type apiKeyInfo struct {
	APIKey string `validate:"required"`
}

var validate = validator.New()

func trimForm(f models.SignupFormData) models.SignupFormData {
	return models.SignupFormData{
		FirstName:   strings.TrimSpace(f.FirstName),
		LastName:    strings.TrimSpace(f.LastName),
		CompanyName: strings.TrimSpace(f.CompanyName),
		Email:       strings.TrimSpace(f.Email),
		APIKey:      strings.TrimSpace(f.APIKey),
	}
}

func validateBasicInfo(f models.SignupFormData) error {
	return toValidationError(validate.Struct(basicInfo{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		CompanyName: f.CompanyName,
		Email:       f.Email,
	}))
}

func validateAPIKey(f models.SignupFormData) error {
	if err := validate.Struct(apiKeyInfo{APIKey: f.APIKey}); err != nil {
		return &ValidationError{Message: "Please enter your API key."}
	}
	return nil
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Message: err.Error()}
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &ValidationError{Message: "Please fill in all required fields."}
		}
	}
	return &ValidationError{Message: "Please enter a valid email address."}
}
