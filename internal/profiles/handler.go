package profiles

import (
	"context"
	"net/http"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
)

type profilesService interface {
	Get(ctx context.Context, callerID int) (*Profile, error)
	Update(ctx context.Context, callerID int, form Form) (*Profile, error)
}

type Handler struct {
	service profilesService
	respond *respond.Responder
}

func NewHandler(service profilesService, responder *respond.Responder) *Handler {
	return &Handler{
		service: service,
		respond: responder,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/profile", handler.HandleGet).Methods("GET").Name("profile-get")
	router.HandleFunc("/profile", handler.HandleUpdate).Methods("PUT", "POST").Name("profile-update")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profilesHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	profile, err := handler.service.Get(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "profile-get", err, nil)
		return
	}
	handler.respond.OK(w, profile)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "profilesHandler.update")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	var form Form
	if err := forms.Decode(r, &form); err != nil {
		handler.respond.BadRequest(w, "error, invalid request body")
		return
	}

	profile, err := handler.service.Update(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "profile", err, form)
		return
	}
	handler.respond.OK(w, profile)
}
