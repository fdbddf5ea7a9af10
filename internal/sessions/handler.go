package sessions

import (
	"context"
	"net/http"
	"strconv"

	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsService interface {
	List(ctx context.Context, callerID, planID int) ([]Session, error)
	Get(ctx context.Context, callerID, planID, sessionID int) (*Session, error)
	NewForm(ctx context.Context, callerID, planID, extra int) (Form, error)
	EditForm(ctx context.Context, callerID, planID, sessionID, extra int) (Form, error)
	Save(ctx context.Context, callerID, planID, sessionID int, form Form) (*Session, error)
	Delete(ctx context.Context, callerID, planID, sessionID int) error
}

type Handler struct {
	service      sessionsService
	respond      *respond.Responder
	defaultExtra int
}

func NewHandler(service sessionsService, responder *respond.Responder, defaultExtra int) *Handler {
	return &Handler{
		service:      service,
		respond:      responder,
		defaultExtra: defaultExtra,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	r := router.PathPrefix("/workoutplans/{planID}/sessions").Subrouter()
	r.HandleFunc("", handler.HandleList).Methods("GET").Name("sessions-list")
	r.HandleFunc("", handler.HandleCreate).Methods("POST").Name("sessions-create")
	r.HandleFunc("/new", handler.HandleNewForm).Methods("GET").Name("sessions-new")
	r.HandleFunc("/{id}", handler.HandleGet).Methods("GET").Name("sessions-get")
	r.HandleFunc("/{id}", handler.HandleUpdate).Methods("PUT", "POST").Name("sessions-update")
	r.HandleFunc("/{id}", handler.HandleDelete).Methods("DELETE").Name("sessions-delete")
	r.HandleFunc("/{id}/edit", handler.HandleEditForm).Methods("GET").Name("sessions-edit")
}

func (handler *Handler) extra(r *http.Request) int {
	extraStr := r.URL.Query().Get("extra")
	if extraStr == "" {
		return handler.defaultExtra
	}
	extra, err := strconv.Atoi(extraStr)
	if err != nil || extra < 0 {
		return handler.defaultExtra
	}
	return extra
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.list")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}

	sessions, err := handler.service.List(ctx, callerID, planID)
	if err != nil {
		handler.respond.Error(w, "sessions-list", err, nil)
		return
	}
	if sessions == nil {
		sessions = []Session{}
	}
	handler.respond.OK(w, sessions)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}
	sessionID, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	session, err := handler.service.Get(ctx, callerID, planID, sessionID)
	if err != nil {
		handler.respond.Error(w, "session-get", err, nil)
		return
	}
	handler.respond.OK(w, session)
}

func (handler *Handler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.newForm")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}

	form, err := handler.service.NewForm(ctx, callerID, planID, handler.extra(r))
	if err != nil {
		handler.respond.Error(w, "session-new", err, nil)
		return
	}
	handler.respond.OK(w, form)
}

func (handler *Handler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.editForm")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}
	sessionID, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	form, err := handler.service.EditForm(ctx, callerID, planID, sessionID, handler.extra(r))
	if err != nil {
		handler.respond.Error(w, "session-edit", err, nil)
		return
	}
	handler.respond.OK(w, form)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	handler.save(w, r, false)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	handler.save(w, r, true)
}

func (handler *Handler) save(w http.ResponseWriter, r *http.Request, update bool) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.save")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}
	sessionID := 0
	if update {
		if sessionID, ok = handler.respond.PathID(w, r, "id"); !ok {
			return
		}
	}

	form, err := DecodeForm(r)
	if err != nil {
		log.Debugf("session form decode: %s", err)
		handler.respond.BadRequest(w, "error, invalid session form")
		return
	}
	span.SetAttributes(attribute.Int("rows.count", len(form.Entries)))

	session, err := handler.service.Save(ctx, callerID, planID, sessionID, form)
	if err != nil {
		handler.respond.Error(w, "session", err, form)
		return
	}

	if update {
		handler.respond.OK(w, session)
		return
	}
	handler.respond.Created(w, session)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "sessionsHandler.delete")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	planID, ok := handler.respond.PathID(w, r, "planID")
	if !ok {
		return
	}
	sessionID, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, callerID, planID, sessionID); err != nil {
		handler.respond.Error(w, "session-delete", err, nil)
		return
	}
	handler.respond.NoContent(w)
}
