package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/db"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"
	"github.com/2beens/muscleforge/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=accounts_test

type accountsRepo interface {
	Create(ctx context.Context, account *Account, afterWrite AfterWrite) error
	Update(ctx context.Context, account *Account, afterWrite AfterWrite) error
	Get(ctx context.Context, id int) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Delete(ctx context.Context, id int) error
}

const usernameTakenMsg = "A user with that username already exists."

type Service struct {
	repo    accountsRepo
	hooks   []PostSaveHook
	metrics *metrics.Manager
	// ability to inject a cheap hash func in tests
	HashFunc func(password string) (string, error)
}

// NewService wires the account lifecycle. hooks run, in order, after every
// account write, inside the same transaction.
func NewService(repo accountsRepo, metricsManager *metrics.Manager, hooks ...PostSaveHook) *Service {
	return &Service{
		repo:     repo,
		hooks:    hooks,
		metrics:  metricsManager,
		HashFunc: pkg.HashPassword,
	}
}

func (s *Service) runHooks(ctx context.Context, account *Account, created bool) AfterWrite {
	return func(q db.Querier) error {
		for _, hook := range s.hooks {
			if err := hook(ctx, q, account, created); err != nil {
				return fmt.Errorf("post save hook: %w", err)
			}
		}
		return nil
	}
}

// Register creates the account. The profile and the default exercise catalog
// are created by the hooks in the same transaction.
func (s *Service) Register(ctx context.Context, form RegisterForm) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.accounts.register")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if verr := validation.Struct(form); verr != nil {
		return nil, verr
	}

	passwordHash, err := s.HashFunc(form.Password1)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &Account{
		Username:     form.Username,
		Email:        form.Email,
		PasswordHash: passwordHash,
	}
	if err := s.repo.Create(ctx, account, s.runHooks(ctx, account, true)); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, &validation.Error{Fields: validation.FieldErrors{"username": usernameTakenMsg}}
		}
		return nil, err
	}

	span.SetAttributes(attribute.Int("account.id", account.ID))
	if s.metrics != nil {
		s.metrics.CounterRegistrations.Inc()
	}
	log.Debugf("account %d [%s] registered", account.ID, account.Username)

	return account, nil
}

func (s *Service) Authenticate(ctx context.Context, creds Credentials) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.accounts.authenticate")
	defer span.End()

	account, err := s.repo.GetByUsername(ctx, strings.TrimSpace(creds.Username))
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrWrongCredentials
	}
	if err != nil {
		return nil, err
	}

	if !pkg.CheckPasswordHash(creds.Password, account.PasswordHash) {
		return nil, ErrWrongCredentials
	}
	return account, nil
}

func (s *Service) Get(ctx context.Context, callerID int) (*Account, error) {
	account, err := s.repo.Get(ctx, callerID)
	if errors.Is(err, ErrAccountNotFound) {
		err = fmt.Errorf("account %d: %w", callerID, access.ErrNotFound)
	}
	return access.Check(callerID, account, err)
}

// UpdateSettings changes username/email. Hooks see created=false and must not
// create anything.
func (s *Service) UpdateSettings(ctx context.Context, callerID int, form SettingsForm) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.accounts.updatesettings")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", callerID))

	account, err := s.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}

	form.Username = strings.TrimSpace(form.Username)
	form.Email = strings.TrimSpace(form.Email)
	if verr := validation.Struct(form); verr != nil {
		return nil, verr
	}

	account.Username = form.Username
	account.Email = form.Email
	if err := s.repo.Update(ctx, account, s.runHooks(ctx, account, false)); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, &validation.Error{Fields: validation.FieldErrors{"username": usernameTakenMsg}}
		}
		return nil, err
	}
	return account, nil
}

func (s *Service) Delete(ctx context.Context, callerID int) error {
	if _, err := s.Get(ctx, callerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, callerID)
}
