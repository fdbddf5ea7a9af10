package goals

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/status"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type goalsRepo interface {
	List(ctx context.Context, ownerID int) ([]Goal, error)
	Get(ctx context.Context, id int) (*Goal, error)
	Create(ctx context.Context, g *Goal) error
	Update(ctx context.Context, g *Goal) error
	Delete(ctx context.Context, id int) error
	Stats(ctx context.Context, ownerID int) (Stats, error)
}

type Service struct {
	repo goalsRepo
}

func NewService(repo goalsRepo) *Service {
	return &Service{repo: repo}
}

// List returns the caller's goals by start date.
func (s *Service) List(ctx context.Context, callerID int) ([]Goal, error) {
	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	return s.repo.List(ctx, callerID)
}

func (s *Service) Stats(ctx context.Context, callerID int) (Stats, error) {
	if callerID <= 0 {
		return Stats{}, access.ErrUnauthenticated
	}
	return s.repo.Stats(ctx, callerID)
}

func (s *Service) Get(ctx context.Context, callerID, id int) (*Goal, error) {
	goal, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrGoalNotFound) {
		err = fmt.Errorf("goal %d: %w", id, access.ErrNotFound)
	}
	return access.Check(callerID, goal, err)
}

func (s *Service) Create(ctx context.Context, callerID int, form Form) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	goal := &Goal{OwnerID: callerID}
	if err := apply(&form, goal); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("goal.id", goal.ID))
	return goal, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int, form Form) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(&form, goal); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func apply(form *Form, goal *Goal) error {
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

	goal.Title = form.Title.String()
	goal.Description = form.Description.String()
	goal.StartDate = start
	goal.EndDate = end
	goal.Status = st
	return nil
}
