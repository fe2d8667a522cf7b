package signup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionpay/models"
)

func strPtr(s string) *string { return &s }

func TestWizardSteps(t *testing.T) {
	now := time.Now()

	withKey := NewWizard("a", true, now)
	assert.Equal(t, []models.WizardStep{models.StepBasicInfo, models.StepAPIKey, models.StepPayment, models.StepSuccess}, withKey.Session().Steps)

	withoutKey := NewWizard("b", false, now)
	assert.Equal(t, []models.WizardStep{models.StepBasicInfo, models.StepPayment, models.StepSuccess}, withoutKey.Session().Steps)
}

func TestWizardAdvanceStopsAtTerminalStep(t *testing.T) {
	w := NewWizard("a", true, time.Now())

	for _, want := range []models.WizardStep{models.StepAPIKey, models.StepPayment, models.StepSuccess} {
		assert.True(t, w.Advance())
		assert.Equal(t, want, w.Step())
	}

	assert.True(t, w.IsTerminal())
	assert.False(t, w.Advance())
	assert.Equal(t, models.StepSuccess, w.Step())
}

func TestWizardRetreatStopsAtFirstStep(t *testing.T) {
	w := NewWizard("a", false, time.Now())

	assert.False(t, w.Retreat())
	assert.Equal(t, models.StepBasicInfo, w.Step())

	w.Advance()
	assert.True(t, w.Retreat())
	assert.Equal(t, models.StepBasicInfo, w.Step())
}

func TestWizardUpdateFormDataMerges(t *testing.T) {
	w := NewWizard("a", true, time.Now())
	w.UpdateFormData(models.SignupFormUpdate{CompanyName: strPtr("Engines Ltd")})

	w.UpdateFormData(models.SignupFormUpdate{Email: strPtr("a@b.com")})
	w.UpdateFormData(models.SignupFormUpdate{FirstName: strPtr("X")})

	assert.Equal(t, models.SignupFormData{
		FirstName:   "X",
		CompanyName: "Engines Ltd",
		Email:       "a@b.com",
	}, w.Session().FormData)
}

func TestLoadWizardClampsPosition(t *testing.T) {
	w, err := LoadWizard(&models.SignupSession{
		Steps:    []models.WizardStep{models.StepBasicInfo, models.StepPayment, models.StepSuccess},
		Position: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StepBasicInfo, w.Step())
}

func TestLoadWizardRejectsSessionWithoutSteps(t *testing.T) {
	_, err := LoadWizard(&models.SignupSession{ID: "x"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardStepText(t *testing.T) {
	text, err := models.StepAPIKey.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "api_key", string(text))

	var step models.WizardStep
	assert.NoError(t, step.UnmarshalText([]byte("PAYMENT")))
	assert.Equal(t, models.StepPayment, step)
	assert.Error(t, step.UnmarshalText([]byte("checkout")))
}
