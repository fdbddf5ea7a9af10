package accounts

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/auth"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/middleware"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=accounts_test

type accountsService interface {
	Register(ctx context.Context, form RegisterForm) (*Account, error)
	Authenticate(ctx context.Context, creds Credentials) (*Account, error)
	Get(ctx context.Context, callerID int) (*Account, error)
	UpdateSettings(ctx context.Context, callerID int, form SettingsForm) (*Account, error)
	Delete(ctx context.Context, callerID int) error
}

type sessionManager interface {
	Login(ctx context.Context, accountID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type tokenCache interface {
	Forget(token string)
}

type LoginResponse struct {
	Token     string `json:"token"`
	AccountID int    `json:"accountId"`
}

type Handler struct {
	service  accountsService
	sessions sessionManager
	tokens   tokenCache
	respond  *respond.Responder
}

func NewHandler(
	service accountsService,
	sessions sessionManager,
	tokens tokenCache,
	responder *respond.Responder,
) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		tokens:   tokens,
		respond:  responder,
	}
}

func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	allowedPerMin int,
) {
	mainRouter.HandleFunc("/account", handler.HandleGet).Methods("GET").Name("account-get")
	mainRouter.HandleFunc("/account", handler.HandleUpdateSettings).Methods("PUT", "POST").Name("account-update")
	mainRouter.HandleFunc("/account", handler.HandleDelete).Methods("DELETE").Name("account-delete")

	authSubrouter := mainRouter.PathPrefix("/a").Subrouter()
	authSubrouter.
		HandleFunc("/register", handler.HandleRegister).
		Methods("POST", "OPTIONS").Name("register")
	authSubrouter.
		HandleFunc("/login", handler.HandleLogin).
		Methods("POST", "OPTIONS").Name("login")
	authSubrouter.
		HandleFunc("/logout", handler.HandleLogout).
		Methods("GET", "POST", "OPTIONS").Name("logout")

	// rate limit the auth endpoints to slow down password guessing
	authSubrouter.Use(middleware.RateLimit(rateLimiter, "auth", allowedPerMin, metricsManager))
}

func (handler *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var form RegisterForm
	if err := forms.Decode(r, &form); err != nil {
		log.Errorf("register, decode form: %s", err)
		handler.respond.BadRequest(w, "error, invalid request body")
		return
	}

	account, err := handler.service.Register(ctx, form)
	if err != nil {
		handler.respond.Error(w, "register", err, form.Echo())
		return
	}

	span.SetAttributes(attribute.Int("account.id", account.ID))
	handler.respond.Created(w, account)
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var creds Credentials
	if err := forms.Decode(r, &creds); err != nil {
		log.Errorf("login, decode params: %s", err)
		handler.respond.BadRequest(w, "login failed")
		return
	}

	if creds.Username == "" {
		handler.respond.BadRequest(w, "error, username empty")
		return
	}
	if creds.Password == "" {
		handler.respond.BadRequest(w, "error, password empty")
		return
	}

	account, err := handler.service.Authenticate(ctx, creds)
	if errors.Is(err, ErrWrongCredentials) {
		log.Tracef("failed login attempt for user: %s", creds.Username)
		handler.respond.BadRequest(w, "error, wrong credentials")
		return
	}
	if err != nil {
		handler.respond.Error(w, "login", err, nil)
		return
	}

	token, err := handler.sessions.Login(ctx, account.ID, time.Now())
	if err != nil {
		handler.respond.Error(w, "login", err, nil)
		return
	}

	log.Tracef("account %d logged in", account.ID)
	handler.respond.OK(w, LoginResponse{Token: token, AccountID: account.ID})
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	token := auth.TokenFromRequest(r)
	if token == "" {
		handler.respond.Error(w, "logout", access.ErrUnauthenticated, nil)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, token)
	handler.tokens.Forget(token)
	if err != nil {
		handler.respond.Error(w, "logout", err, nil)
		return
	}
	if !loggedOut {
		log.Tracef("logout with unknown token")
	}

	handler.respond.NoContent(w)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	account, err := handler.service.Get(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "account-get", err, nil)
		return
	}
	handler.respond.OK(w, account)
}

func (handler *Handler) HandleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.updateSettings")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	var form SettingsForm
	if err := forms.Decode(r, &form); err != nil {
		handler.respond.BadRequest(w, "error, invalid request body")
		return
	}

	account, err := handler.service.UpdateSettings(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "account-settings", err, form)
		return
	}
	handler.respond.OK(w, account)
}

// HandleDelete removes the account with everything it owns and ends the
// current login session.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "accountsHandler.delete")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, callerID); err != nil {
		handler.respond.Error(w, "account-delete", err, nil)
		return
	}

	if token := auth.TokenFromRequest(r); token != "" {
		if _, err := handler.sessions.Logout(ctx, token); err != nil {
			log.Errorf("account %d deleted, but logout failed: %s", callerID, err)
		}
		handler.tokens.Forget(token)
	}

	log.Infof("account %d deleted", callerID)
	handler.respond.NoContent(w)
}
