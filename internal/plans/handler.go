package plans

import (
	"context"
	"net/http"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/respond"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=plans_test

type plansService interface {
	List(ctx context.Context, callerID int) ([]Plan, error)
	Get(ctx context.Context, callerID, id int) (*Detail, error)
	Create(ctx context.Context, callerID int, form Form) (*Plan, error)
	Update(ctx context.Context, callerID, id int, form Form) (*Plan, error)
	Delete(ctx context.Context, callerID, id int) error
}

type Handler struct {
	service plansService
	respond *respond.Responder
}

func NewHandler(service plansService, responder *respond.Responder) *Handler {
	return &Handler{
		service: service,
		respond: responder,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workoutplans", handler.HandleList).Methods("GET").Name("plans-list")
	router.HandleFunc("/workoutplans", handler.HandleCreate).Methods("POST").Name("plans-create")
	router.HandleFunc("/workoutplans/{id}", handler.HandleGet).Methods("GET").Name("plans-get")
	router.HandleFunc("/workoutplans/{id}", handler.HandleUpdate).Methods("PUT").Name("plans-update")
	router.HandleFunc("/workoutplans/{id}", handler.HandleDelete).Methods("DELETE").Name("plans-delete")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "plansHandler.list")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}

	plans, err := handler.service.List(ctx, callerID)
	if err != nil {
		handler.respond.Error(w, "plans-list", err, nil)
		return
	}
	if plans == nil {
		plans = []Plan{}
	}
	span.SetAttributes(attribute.Int("plans.count", len(plans)))
	handler.respond.OK(w, plans)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "plansHandler.get")
	defer span.End()

	callerID, ok := handler.respond.CallerID(w, r)
	if !ok {
		return
	}
	id, ok := handler.respond.PathID(w, r, "id")
	if !ok {
		return
	}

	detail, err := handler.service.Get(ctx, callerID, id)
	if err != nil {
		handler.respond.Error(w, "plan-get", err, nil)
		return
	}
	handler.respond.OK(w, detail)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "plansHandler.create")
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

	plan, err := handler.service.Create(ctx, callerID, form)
	if err != nil {
		handler.respond.Error(w, "plan", err, form)
		return
	}
	handler.respond.Created(w, plan)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "plansHandler.update")
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

	plan, err := handler.service.Update(ctx, callerID, id, form)
	if err != nil {
		handler.respond.Error(w, "plan", err, form)
		return
	}
	handler.respond.OK(w, plan)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "plansHandler.delete")
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
		handler.respond.Error(w, "plan-delete", err, nil)
		return
	}
	handler.respond.NoContent(w)
}
