package signup

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visionpay/models"
	"visionpay/services/backend"
	"visionpay/services/backend/backendtest"
	"visionpay/services/payment"
)

type fakeCheckout struct {
	calls   int
	got     models.SignupFormData
	outcome *models.CheckoutOutcome
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeCheckout) StartCheckout(_ context.Context, form models.SignupFormData) (*models.CheckoutOutcome, error) {
	f.calls++
	f.got = form
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	return f.outcome, f.err
}

func newService(api *backendtest.Fake, checkout payment.CheckoutService, collectAPIKey bool) *DefaultSignupService {
	return NewSignupService(api, checkout, NewMemoryStore(time.Hour), collectAPIKey, nil)
}

func fillBasicInfo(t *testing.T, svc *DefaultSignupService, id string) {
	t.Helper()
	_, err := svc.UpdateFormData(context.Background(), id, models.SignupFormUpdate{
		FirstName:   strPtr("Ada"),
		LastName:    strPtr("Lovelace"),
		CompanyName: strPtr("Engines Ltd"),
		Email:       strPtr(" ada@example.com "),
	})
	require.NoError(t, err)
}

func TestStartReturnsFirstStep(t *testing.T) {
	svc := newService(&backendtest.Fake{}, &fakeCheckout{}, true)

	view, err := svc.Start(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, models.StepBasicInfo, view.Step)

	got, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
}

func TestGetUnknownSession(t *testing.T) {
	svc := newService(&backendtest.Fake{}, &fakeCheckout{}, true)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestBasicInfoRequiresAllFields(t *testing.T) {
	api := &backendtest.Fake{}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	_, _ = svc.UpdateFormData(context.Background(), view.ID, models.SignupFormUpdate{Email: strPtr("ada@example.com")})

	_, err := svc.Continue(context.Background(), view.ID)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "Please fill in all required fields.", vErr.Message)
	assert.Zero(t, api.TotalCalls())

	got, _ := svc.Get(context.Background(), view.ID)
	assert.Equal(t, models.StepBasicInfo, got.Step)
}

func TestBasicInfoRejectsBadEmail(t *testing.T) {
	api := &backendtest.Fake{}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, _ = svc.UpdateFormData(context.Background(), view.ID, models.SignupFormUpdate{Email: strPtr("not-an-email")})

	_, err := svc.Continue(context.Background(), view.ID)
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email address.", err.Error())
	assert.Zero(t, api.TotalCalls())
}

func TestBasicInfoBlocksDuplicateAccount(t *testing.T) {
	api := &backendtest.Fake{
		UserExistsFunc: func(context.Context, string) (bool, error) { return true, nil },
	}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)

	_, err := svc.Continue(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrAccountExists)
	assert.Zero(t, api.Calls("CreateAccount"))
}

func TestBasicInfoCreatesAccountAndAdvances(t *testing.T) {
	var created models.CreateAccountRequest
	api := &backendtest.Fake{
		CreateAccountFunc: func(_ context.Context, req models.CreateAccountRequest) (*models.CreateAccountResponse, error) {
			created = req
			return &models.CreateAccountResponse{Email: req.Email}, nil
		},
	}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)

	next, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAPIKey, next.Step)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, "ada@example.com", next.FormData.Email)

	// Going back and continuing again does not recreate the account.
	_, err = svc.Back(context.Background(), view.ID)
	require.NoError(t, err)
	next, err = svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAPIKey, next.Step)
	assert.Equal(t, 1, api.Calls("CreateAccount"))
	assert.Equal(t, 1, api.Calls("UserExists"))
}

func TestBasicInfoBackendErrorStaysOnStep(t *testing.T) {
	api := &backendtest.Fake{
		CreateAccountFunc: func(context.Context, models.CreateAccountRequest) (*models.CreateAccountResponse, error) {
			return nil, &backend.APIError{Op: "create-account", StatusCode: http.StatusBadRequest, Detail: "Account already exists or creation failed"}
		},
	}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)

	_, err := svc.Continue(context.Background(), view.ID)
	require.Error(t, err)
	assert.Equal(t, "Account already exists or creation failed", err.Error())
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))

	got, _ := svc.Get(context.Background(), view.ID)
	assert.Equal(t, models.StepBasicInfo, got.Step)
}

func TestAPIKeyStepStoresKey(t *testing.T) {
	var stored models.UpdateAPIKeyRequest
	api := &backendtest.Fake{
		UpdateAPIKeyFunc: func(_ context.Context, req models.UpdateAPIKeyRequest) (*models.MessageResponse, error) {
			stored = req
			return &models.MessageResponse{}, nil
		},
	}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)

	_, err = svc.Continue(context.Background(), view.ID)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Zero(t, api.Calls("UpdateAPIKey"))

	_, _ = svc.UpdateFormData(context.Background(), view.ID, models.SignupFormUpdate{APIKey: strPtr("sk-mistral")})
	next, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, next.Step)
	assert.Equal(t, models.UpdateAPIKeyRequest{Email: "ada@example.com", NewAPIKey: "sk-mistral"}, stored)
}

func TestPaymentStoresLicenseAndFinishes(t *testing.T) {
	checkout := &fakeCheckout{outcome: &models.CheckoutOutcome{Mode: models.CheckoutModeTest, LicenseKey: "LIC-123"}}
	svc := newService(&backendtest.Fake{}, checkout, false)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)

	done, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepSuccess, done.Step)
	assert.Equal(t, "LIC-123", done.LicenseKey)
	assert.Equal(t, "ada@example.com", checkout.got.Email)

	_, err = svc.Continue(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrTerminalStep)
}

func TestPaymentRedirectStaysOnPayment(t *testing.T) {
	redirect := &models.Redirect{URL: "https://checkout.stripe.com/c/pay/cs_1", SessionID: "cs_1"}
	checkout := &fakeCheckout{outcome: &models.CheckoutOutcome{Mode: models.CheckoutModeRedirect, Redirect: redirect}}
	svc := newService(&backendtest.Fake{}, checkout, false)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, _ = svc.Continue(context.Background(), view.ID)

	out, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, out.Step)
	assert.Equal(t, redirect, out.Redirect)
	assert.Empty(t, out.LicenseKey)
}

func TestPaymentErrorStaysOnPayment(t *testing.T) {
	checkout := &fakeCheckout{err: payment.ErrNoSessionID}
	svc := newService(&backendtest.Fake{}, checkout, false)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, _ = svc.Continue(context.Background(), view.ID)

	_, err := svc.Continue(context.Background(), view.ID)
	assert.ErrorIs(t, err, payment.ErrNoSessionID)

	got, _ := svc.Get(context.Background(), view.ID)
	assert.Equal(t, models.StepPayment, got.Step)
}

func TestPaymentRequiresAccount(t *testing.T) {
	checkout := &fakeCheckout{}
	store := NewMemoryStore(time.Hour)
	svc := NewSignupService(&backendtest.Fake{}, checkout, store, false, nil)
	w := NewWizard("s1", false, time.Now())
	w.Advance()
	require.NoError(t, store.Save(context.Background(), w.Session()))

	_, err := svc.Continue(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrAccountRequired)
	assert.Zero(t, checkout.calls)
}

func TestResetClearsSession(t *testing.T) {
	checkout := &fakeCheckout{outcome: &models.CheckoutOutcome{Mode: models.CheckoutModeDemo, LicenseKey: "DEMO_LICENSE_KEY"}}
	svc := newService(&backendtest.Fake{}, checkout, false)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, _ = svc.Continue(context.Background(), view.ID)
	_, _ = svc.Continue(context.Background(), view.ID)

	reset, err := svc.Reset(context.Background(), view.ID)
	require.NoError(t, err)
	assert.NotEqual(t, view.ID, reset.ID)
	assert.Equal(t, models.StepBasicInfo, reset.Step)
	assert.Len(t, reset.Steps, 3)
	assert.Empty(t, reset.LicenseKey)
	assert.Equal(t, models.SignupFormData{}, reset.FormData)

	_, err = svc.Get(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	got, err := svc.Get(context.Background(), reset.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepBasicInfo, got.Step)
}

func TestResetUnknownSession(t *testing.T) {
	svc := newService(&backendtest.Fake{}, &fakeCheckout{}, false)

	_, err := svc.Reset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBasicInfoDuplicateCheckUnreachable(t *testing.T) {
	api := &backendtest.Fake{
		UserExistsFunc: func(context.Context, string) (bool, error) {
			return false, &backend.APIError{Op: "user-exists", Err: errors.New("dial tcp: connection refused")}
		},
	}
	svc := newService(api, &fakeCheckout{}, true)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)

	_, err := svc.Continue(context.Background(), view.ID)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(err))
	assert.Equal(t, "Unable to reach the license server. Please try again later.", err.Error())
	assert.Zero(t, api.Calls("CreateAccount"))

	got, _ := svc.Get(context.Background(), view.ID)
	assert.Equal(t, models.StepBasicInfo, got.Step)
}

func TestAccountCreationSurvivesCancelledRequest(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	created := map[string]bool{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	api := &backendtest.Fake{
		UserExistsFunc: func(_ context.Context, email string) (bool, error) { return created[email], nil },
		CreateAccountFunc: func(_ context.Context, req models.CreateAccountRequest) (*models.CreateAccountResponse, error) {
			created[req.Email] = true
			// The client goes away once the backend has accepted the account.
			cancel()
			return &models.CreateAccountResponse{Email: req.Email}, nil
		},
	}
	svc := NewSignupService(api, &fakeCheckout{}, NewRedisStore(client, time.Hour, nil), true, nil)
	view, err := svc.Start(context.Background())
	require.NoError(t, err)
	fillBasicInfo(t, svc, view.ID)

	next, err := svc.Continue(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAPIKey, next.Step)

	got, err := svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAPIKey, got.Step)

	_, err = svc.Back(context.Background(), view.ID)
	require.NoError(t, err)
	again, err := svc.Continue(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StepAPIKey, again.Step)
	assert.Equal(t, 1, api.Calls("CreateAccount"))
}

func TestGetSessionWithoutSteps(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, mr.Set("signup:session:x", `{"id":"x"}`))

	svc := NewSignupService(&backendtest.Fake{}, &fakeCheckout{}, NewRedisStore(client, time.Hour, nil), true, nil)

	_, err := svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = svc.Continue(context.Background(), "x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConcurrentContinueIsRejected(t *testing.T) {
	checkout := &fakeCheckout{
		outcome: &models.CheckoutOutcome{Mode: models.CheckoutModeDemo, LicenseKey: "DEMO_LICENSE_KEY"},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	svc := newService(&backendtest.Fake{}, checkout, false)
	view, _ := svc.Start(context.Background())
	fillBasicInfo(t, svc, view.ID)
	_, _ = svc.Continue(context.Background(), view.ID)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Continue(context.Background(), view.ID)
		done <- err
	}()
	<-checkout.entered

	_, err := svc.Continue(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrBusy)
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))

	close(checkout.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, checkout.calls)
}
