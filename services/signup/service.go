package signup

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"visionpay/models"
	"visionpay/services/backend"
	"visionpay/services/payment"
)

type SignupService interface {
	Start(ctx context.Context) (*models.SignupSessionView, error)
	Get(ctx context.Context, id string) (*models.SignupSessionView, error)
	UpdateFormData(ctx context.Context, id string, update models.SignupFormUpdate) (*models.SignupSessionView, error)
	Continue(ctx context.Context, id string) (*models.SignupSessionView, error)
	Back(ctx context.Context, id string) (*models.SignupSessionView, error)
	Reset(ctx context.Context, id string) (*models.SignupSessionView, error)
}

// DefaultSignupService drives wizard sessions against the backend and the
// checkout. Each mutating call on a session holds that session's busy flag.
type DefaultSignupService struct {
	backend       backend.API
	checkout      payment.CheckoutService
	store         SessionStore
	collectAPIKey bool
	logger        *zap.Logger
	now           func() time.Time

	busy sync.Map
}

func NewSignupService(api backend.API, checkout payment.CheckoutService, store SessionStore, collectAPIKey bool, logger *zap.Logger) *DefaultSignupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultSignupService{
		backend:       api,
		checkout:      checkout,
		store:         store,
		collectAPIKey: collectAPIKey,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *DefaultSignupService) Start(ctx context.Context) (*models.SignupSessionView, error) {
	w := NewWizard(uuid.New().String(), s.collectAPIKey, s.now())
	if err := s.store.Save(ctx, w.Session()); err != nil {
		return nil, err
	}
	s.logger.Debug("signup session started", zap.String("sessionID", w.Session().ID))
	return w.View(nil), nil
}

func (s *DefaultSignupService) Get(ctx context.Context, id string) (*models.SignupSessionView, error) {
	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.View(nil), nil
}

func (s *DefaultSignupService) UpdateFormData(ctx context.Context, id string, update models.SignupFormUpdate) (*models.SignupSessionView, error) {
	return s.mutate(ctx, id, func(w *Wizard) (*models.Redirect, error) {
		w.UpdateFormData(update)
		return nil, nil
	})
}

func (s *DefaultSignupService) Back(ctx context.Context, id string) (*models.SignupSessionView, error) {
	return s.mutate(ctx, id, func(w *Wizard) (*models.Redirect, error) {
		w.Retreat()
		return nil, nil
	})
}

// Reset abandons the session and starts a fresh one under a new id. The old
// id stops working.
func (s *DefaultSignupService) Reset(ctx context.Context, id string) (*models.SignupSessionView, error) {
	release, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	w := NewWizard(uuid.New().String(), s.collectAPIKey, s.now())
	if err := s.store.Save(ctx, w.Session()); err != nil {
		return nil, err
	}
	if err := s.store.Delete(context.WithoutCancel(ctx), id); err != nil {
		// The old session still expires with the store's TTL.
		s.logger.Warn("failed to delete reset signup session", zap.String("sessionID", id), zap.Error(err))
	}
	s.logger.Debug("signup session reset", zap.String("from", id), zap.String("to", w.Session().ID))
	return w.View(nil), nil
}

// Continue runs the current step's action and advances when it succeeds.
// A processor redirect leaves the wizard on PAYMENT.
func (s *DefaultSignupService) Continue(ctx context.Context, id string) (*models.SignupSessionView, error) {
	return s.mutate(ctx, id, func(w *Wizard) (*models.Redirect, error) {
		switch w.Step() {
		case models.StepBasicInfo:
			return nil, s.submitBasicInfo(ctx, w)
		case models.StepAPIKey:
			return nil, s.submitAPIKey(ctx, w)
		case models.StepPayment:
			return s.submitPayment(ctx, w)
		default:
			return nil, ErrTerminalStep
		}
	})
}

func (s *DefaultSignupService) submitBasicInfo(ctx context.Context, w *Wizard) error {
	sess := w.Session()
	form := trimForm(sess.FormData)
	if err := validateBasicInfo(form); err != nil {
		return err
	}

	// Came back to this step after creating the account; nothing to redo.
	if sess.AccountEmail != "" && strings.EqualFold(sess.AccountEmail, form.Email) {
		w.Advance()
		return nil
	}

	exists, err := s.backend.UserExists(ctx, form.Email)
	if err != nil {
		s.logger.Error("duplicate check failed", zap.String("email", form.Email), zap.Error(err))
		return &StepError{
			Message: backend.UserMessage(err, "We couldn't verify your email. Please try again."),
			Status:  http.StatusBadGateway,
			Err:     err,
		}
	}
	if exists {
		return ErrAccountExists
	}

	_, err = s.backend.CreateAccount(ctx, models.CreateAccountRequest{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		CompanyName: form.CompanyName,
		Email:       form.Email,
	})
	if err != nil {
		s.logger.Error("account creation failed", zap.String("email", form.Email), zap.Error(err))
		status := http.StatusBadGateway
		if code := backend.StatusCode(err); code == http.StatusBadRequest || code == http.StatusConflict {
			status = http.StatusConflict
		}
		return &StepError{
			Message: backend.UserMessage(err, "We couldn't create your account. Please try again."),
			Status:  status,
			Err:     err,
		}
	}

	s.logger.Info("account created", zap.String("sessionID", sess.ID), zap.String("email", form.Email))
	sess.FormData = form
	sess.AccountEmail = form.Email
	w.Advance()
	return nil
}

func (s *DefaultSignupService) submitAPIKey(ctx context.Context, w *Wizard) error {
	sess := w.Session()
	if sess.AccountEmail == "" {
		return ErrAccountRequired
	}
	form := trimForm(sess.FormData)
	if err := validateAPIKey(form); err != nil {
		return err
	}

	if _, err := s.backend.UpdateAPIKey(ctx, models.UpdateAPIKeyRequest{
		Email:     sess.AccountEmail,
		NewAPIKey: form.APIKey,
	}); err != nil {
		s.logger.Error("storing API key failed", zap.String("email", sess.AccountEmail), zap.Error(err))
		return &StepError{
			Message: backend.UserMessage(err, "We couldn't save your API key. Please try again."),
			Status:  http.StatusBadGateway,
			Err:     err,
		}
	}

	sess.FormData.APIKey = form.APIKey
	w.Advance()
	return nil
}

func (s *DefaultSignupService) submitPayment(ctx context.Context, w *Wizard) (*models.Redirect, error) {
	sess := w.Session()
	if sess.AccountEmail == "" {
		return nil, ErrAccountRequired
	}
	form := trimForm(sess.FormData)
	form.Email = sess.AccountEmail

	outcome, err := s.checkout.StartCheckout(ctx, form)
	if err != nil {
		return nil, err
	}
	if outcome.Mode == models.CheckoutModeRedirect {
		return outcome.Redirect, nil
	}

	s.logger.Info("license issued without processor checkout",
		zap.String("sessionID", sess.ID),
		zap.String("mode", string(outcome.Mode)))
	w.SetLicenseKey(outcome.LicenseKey)
	w.Advance()
	return nil, nil
}

// acquire takes the session's busy flag. The returned func releases it.
func (s *DefaultSignupService) acquire(id string) (func(), error) {
	if _, inFlight := s.busy.LoadOrStore(id, struct{}{}); inFlight {
		return nil, ErrBusy
	}
	return func() { s.busy.Delete(id) }, nil
}

// mutate loads the session under its busy flag, applies fn and saves the
// result. A failing fn leaves the stored session untouched. Once fn succeeds
// the save ignores cancellation: fn may already have changed backend state.
func (s *DefaultSignupService) mutate(ctx context.Context, id string, fn func(*Wizard) (*models.Redirect, error)) (*models.SignupSessionView, error) {
	release, err := s.acquire(id)
	if err != nil {
		return nil, err
	}
	defer release()

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	redirect, err := fn(w)
	if err != nil {
		return nil, err
	}
	w.Touch(s.now())
	if err := s.store.Save(context.WithoutCancel(ctx), w.Session()); err != nil {
		s.logger.Error("failed to save signup session", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}
	return w.View(redirect), nil
}

func (s *DefaultSignupService) load(ctx context.Context, id string) (*Wizard, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrSessionNotFound
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	w, err := LoadWizard(sess)
	if err != nil {
		s.logger.Warn("stored signup session has no steps", zap.String("sessionID", id))
		return nil, err
	}
	return w, nil
}
