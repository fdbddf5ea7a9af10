package exercises

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type exercisesRepo interface {
	List(ctx context.Context, ownerID int) ([]Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	Create(ctx context.Context, e *Exercise) error
	Update(ctx context.Context, e *Exercise) error
	Delete(ctx context.Context, id int) error
	OwnedNames(ctx context.Context, ownerID int, ids []int) (map[int]string, error)
}

type Service struct {
	repo exercisesRepo
}

func NewService(repo exercisesRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, callerID int) ([]Exercise, error) {
	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	return s.repo.List(ctx, callerID)
}

func (s *Service) Get(ctx context.Context, callerID, id int) (*Exercise, error) {
	exercise, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrExerciseNotFound) {
		err = fmt.Errorf("exercise %d: %w", id, access.ErrNotFound)
	}
	return access.Check(callerID, exercise, err)
}

func (s *Service) Create(ctx context.Context, callerID int, form Form) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	forms.TrimSpace(&form)
	if verr := validation.Struct(form); verr != nil {
		return nil, verr
	}

	exercise := &Exercise{OwnerID: callerID}
	form.apply(exercise)
	if err := s.repo.Create(ctx, exercise); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("exercise.id", exercise.ID))
	return exercise, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int, form Form) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	forms.TrimSpace(&form)
	if verr := validation.Struct(form); verr != nil {
		return nil, verr
	}

	form.apply(exercise)
	if err := s.repo.Update(ctx, exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// OwnedNames resolves the exercises a session form refers to. Ids that do not
// exist or belong to someone else are simply absent from the result.
func (s *Service) OwnedNames(ctx context.Context, callerID int, ids []int) (map[int]string, error) {
	return s.repo.OwnedNames(ctx, callerID, ids)
}
