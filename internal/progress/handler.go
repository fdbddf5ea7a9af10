package progress

import (
	"context"
	"net/http"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type progressService interface {
	List(ctx context.Context, callerID int) ([]Entry, error)
	Get(ctx context.Context, callerID, id int) (*Entry, error)
	Create(ctx context.Context, callerID int, form Form) (*Entry, error)
	Update(ctx context.Context, callerID, id int, form Form) (*Entry, error)
	Delete(ctx context.Context, callerID, id int) error
}

type Handler struct {
	service progressService
	respond *respond.Responder
}

func NewHandler(service progressService, responder *respond.Responder) *Handler {
	return &Handler{
		service: service,
		respond: responder,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/progress", handler.HandleList).Methods("GET").Name("progress-list")
	router.HandleFunc("/progress", handler.HandleCreate).Methods("POST").Name("progress-create")
	router.HandleFunc("/progress/{id}", handler.HandleGet).Methods("GET").Name("progress-get")
	router.HandleFunc("/progress/{id}", handler.HandleUpdate).Methods("PUT").Name("progress-update")
	router.HandleFunc("/progress/{id}", handler.HandleDelete).Methods("DELETE").Name("progress-delete")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.list")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	entries, err := handler.service.List(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "progress-list", err, nil)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	span.SetAttributes(attribute.Int("entries.count", len(entries)))
	handler.respond.OK(w, entries)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	entry, err := handler.service.Get(ctx, callerID, id)
	if err != nil {
		handler.respond.Error(w, "progress-get", err, nil)
		return
	}
	handler.respond.OK(w, entry)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.create")
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

	entry, err := handler.service.Create(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "progress", err, form)
		return
	}
	handler.respond.Created(w, entry)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.update")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	var form Form
	if err := forms.Decode(r, &form); err != nil {
		handler.respond.BadRequest(w, "error, invalid request body")
		return
	}

	entry, err := handler.service.Update(ctx, callerID, id, form)
	if err != nil {
		handler.respond.Error(w, "progress", err, form)
		return
	}
	handler.respond.OK(w, entry)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "progressHandler.delete")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, callerID, id); err != nil {
		handler.respond.Error(w, "progress-delete", err, nil)
		return
	}
	handler.respond.NoContent(w)
}
