package signup

import (
	"time"

	"visionpay/models"
)

// Wizard is the step state machine over one signup session. Transitions move
// exactly one step; moving past either end is a no-op.
type Wizard struct {
	s *models.SignupSession
}

// NewWizard starts a session at BASIC_INFO. The API_KEY step is only part of
// the flow when collectAPIKey is set.
func NewWizard(id string, collectAPIKey bool, now time.Time) *Wizard {
	steps := []models.WizardStep{models.StepBasicInfo}
	if collectAPIKey {
		steps = append(steps, models.StepAPIKey)
	}
	steps = append(steps, models.StepPayment, models.StepSuccess)
	return &Wizard{s: &models.SignupSession{
		ID:        id,
		Steps:     steps,
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

// LoadWizard wraps a stored session. A session without steps cannot be
// resumed and is reported as not found.
func LoadWizard(s *models.SignupSession) (*Wizard, error) {
	if s == nil || len(s.Steps) == 0 {
		return nil, ErrSessionNotFound
	}
	if s.Position < 0 || s.Position >= len(s.Steps) {
		s.Position = 0
	}
	return &Wizard{s: s}, nil
}

func (w *Wizard) Session() *models.SignupSession { return w.s }

func (w *Wizard) Step() models.WizardStep {
	return w.s.Steps[w.s.Position]
}

func (w *Wizard) IsTerminal() bool {
	return w.s.Position == len(w.s.Steps)-1
}

// Advance reports whether the step changed.
func (w *Wizard) Advance() bool {
	if w.IsTerminal() {
		return false
	}
	w.s.Position++
	return true
}

// Retreat reports whether the step changed.
func (w *Wizard) Retreat() bool {
	if w.s.Position == 0 {
		return false
	}
	w.s.Position--
	return true
}

// UpdateFormData merges the non-nil fields of u. No validation happens here.
func (w *Wizard) UpdateFormData(u models.SignupFormUpdate) {
	f := &w.s.FormData
	if u.FirstName != nil {
		f.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		f.LastName = *u.LastName
	}
	if u.CompanyName != nil {
		f.CompanyName = *u.CompanyName
	}
	if u.Email != nil {
		f.Email = *u.Email
	}
	if u.APIKey != nil {
		f.APIKey = *u.APIKey
	}
}

func (w *Wizard) SetLicenseKey(key string) { w.s.LicenseKey = key }

func (w *Wizard) Touch(now time.Time) { w.s.UpdatedAt = now }

// View is the browser-facing snapshot.
func (w *Wizard) View(redirect *models.Redirect) *models.SignupSessionView {
	steps := make([]models.WizardStep, len(w.s.Steps))
	copy(steps, w.s.Steps)
	return &models.SignupSessionView{
		ID:         w.s.ID,
		Step:       w.Step(),
		Steps:      steps,
		FormData:   w.s.FormData,
		LicenseKey: w.s.LicenseKey,
		Redirect:   redirect,
	}
}
