package plans

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/sessions"
	"github.com/2beens/muscleforge/internal/status"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type plansRepo interface {
	List(ctx context.Context, ownerID int) ([]Plan, error)
	Get(ctx context.Context, id int) (*Plan, error)
	Create(ctx context.Context, p *Plan) error
	Update(ctx context.Context, p *Plan) error
	Delete(ctx context.Context, id int) error
}

type sessionsLister interface {
	ListByPlan(ctx context.Context, planID int) ([]sessions.Session, error)
}

type Service struct {
	repo     plansRepo
	sessions sessionsLister
}

func NewService(repo plansRepo, sessions sessionsLister) *Service {
	return &Service{
		repo:     repo,
		sessions: sessions,
	}
}

func (s *Service) List(ctx context.Context, callerID int) ([]Plan, error) {
	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	return s.repo.List(ctx, callerID)
}

func (s *Service) plan(ctx context.Context, callerID, id int) (*Plan, error) {
	plan, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrPlanNotFound) {
		err = fmt.Errorf("plan %d: %w", id, access.ErrNotFound)
	}
	return access.Check(callerID, plan, err)
}

// Get returns the plan with its sessions.
func (s *Service) Get(ctx context.Context, callerID, id int) (_ *Detail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.plan(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	planSessions, err := s.sessions.ListByPlan(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if planSessions == nil {
		planSessions = []sessions.Session{}
	}
	span.SetAttributes(attribute.Int("sessions.count", len(planSessions)))
	return &Detail{Plan: plan, Sessions: planSessions}, nil
}

func (s *Service) Create(ctx context.Context, callerID int, form Form) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	plan := &Plan{OwnerID: callerID}
	if err := apply(&form, plan); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("plan.id", plan.ID))
	return plan, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int, form Form) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.plan(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(&form, plan); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int) error {
	if _, err := s.plan(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// apply validates form and copies it onto plan only when it is valid.
func apply(form *Form, plan *Plan) error {
	forms.TrimSpace(form)
	verr := validation.Struct(*form)
	if verr == nil {
		verr = &validation.Error{}
	}
	start, end := verr.DateRange("startDate", "endDate", form.StartDate, form.EndDate)
	st, statusErr := status.Parse(form.Status.String())
	if statusErr != nil {
		verr.Add("status", validation.MsgInvalidChoice)
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	plan.Title = form.Title.String()
	plan.StartDate = start
	plan.EndDate = end
	plan.Status = st
	return nil
}
