package goals

import (
	"context"
	"net/http"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsService interface {
	List(ctx context.Context, callerID int) ([]Goal, error)
	Get(ctx context.Context, callerID, id int) (*Goal, error)
	Create(ctx context.Context, callerID int, form Form) (*Goal, error)
	Update(ctx context.Context, callerID, id int, form Form) (*Goal, error)
	Delete(ctx context.Context, callerID, id int) error
	Stats(ctx context.Context, callerID int) (Stats, error)
}

type Handler struct {
	service goalsService
	respond *respond.Responder
}

func NewHandler(service goalsService, responder *respond.Responder) *Handler {
	return &Handler{
		service: service,
		respond: responder,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/goals", handler.HandleList).Methods("GET").Name("goals-list")
	router.HandleFunc("/goals", handler.HandleCreate).Methods("POST").Name("goals-create")
	// before /goals/{id}, which would otherwise take "stats" as an id
	router.HandleFunc("/goals/stats", handler.HandleStats).Methods("GET").Name("goals-stats")
	router.HandleFunc("/goals/{id}", handler.HandleGet).Methods("GET").Name("goals-get")
	router.HandleFunc("/goals/{id}", handler.HandleUpdate).Methods("PUT").Name("goals-update")
	router.HandleFunc("/goals/{id}", handler.HandleDelete).Methods("DELETE").Name("goals-delete")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.list")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	goals, err := handler.service.List(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "goals-list", err, nil)
		return
	}
	if goals == nil {
		goals = []Goal{}
	}
	span.SetAttributes(attribute.Int("goals.count", len(goals)))
	handler.respond.OK(w, goals)
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.stats")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	stats, err := handler.service.Stats(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "goals-stats", err, nil)
		return
	}
	handler.respond.OK(w, stats)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	goal, err := handler.service.Get(ctx, callerID, id)
	if err != nil {
		handler.respond.Error(w, "goal-get", err, nil)
		return
	}
	handler.respond.OK(w, goal)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.create")
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

	goal, err := handler.service.Create(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "goal", err, form)
		return
	}
	handler.respond.Created(w, goal)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.update")
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

	goal, err := handler.service.Update(ctx, callerID, id, form)
	if err != nil {
		handler.respond.Error(w, "goal", err, form)
		return
	}
	handler.respond.OK(w, goal)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "goalsHandler.delete")
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
		handler.respond.Error(w, "goal-delete", err, nil)
		return
	}
	handler.respond.NoContent(w)
}
