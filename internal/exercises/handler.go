package exercises

import (
	"context"
	"net/http"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesService interface {
	List(ctx context.Context, callerID int) ([]Exercise, error)
	Get(ctx context.Context, callerID, id int) (*Exercise, error)
	Create(ctx context.Context, callerID int, form Form) (*Exercise, error)
	Update(ctx context.Context, callerID, id int, form Form) (*Exercise, error)
	Delete(ctx context.Context, callerID, id int) error
}

type Handler struct {
	service exercisesService
	respond *respond.Responder
}

func NewHandler(service exercisesService, responder *respond.Responder) *Handler {
	return &Handler{
		service: service,
		respond: responder,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/exercises", handler.HandleList).Methods("GET").Name("exercises-list")
	router.HandleFunc("/exercises", handler.HandleCreate).Methods("POST").Name("exercises-create")
	router.HandleFunc("/exercises/{id}", handler.HandleGet).Methods("GET").Name("exercises-get")
	router.HandleFunc("/exercises/{id}", handler.HandleUpdate).Methods("PUT").Name("exercises-update")
	router.HandleFunc("/exercises/{id}", handler.HandleDelete).Methods("DELETE").Name("exercises-delete")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.list")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	exercises, err := handler.service.List(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "exercises-list", err, nil)
		return
	}
	if exercises == nil {
		exercises = []Exercise{}
	}
	span.SetAttributes(attribute.Int("exercises.count", len(exercises)))
	handler.respond.OK(w, exercises)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	exercise, err := handler.service.Get(ctx, callerID, id)
	if err != nil {
		handler.respond.Error(w, "exercise-get", err, nil)
		return
	}
	handler.respond.OK(w, exercise)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.create")
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

	exercise, err := handler.service.Create(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "exercise", err, form)
		return
	}
	handler.respond.Created(w, exercise)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.update")
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

	exercise, err := handler.service.Update(ctx, callerID, id, form)
	if err != nil {
		handler.respond.Error(w, "exercise", err, form)
		return
	}
	handler.respond.OK(w, exercise)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "exercisesHandler.delete")
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
		handler.respond.Error(w, "exercise-delete", err, nil)
		return
	}
	handler.respond.NoContent(w)
}
