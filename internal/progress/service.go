package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"
)

const msgNotNegative = "Ensure this value is greater than or equal to 0."

type progressRepo interface {
	List(ctx context.Context, ownerID int) ([]Entry, error)
	Get(ctx context.Context, id int) (*Entry, error)
	Create(ctx context.Context, e *Entry) error
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id int) error
}

type Service struct {
	repo progressRepo
}

func NewService(repo progressRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, callerID int) ([]Entry, error) {
	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	return s.repo.List(ctx, callerID)
}

func (s *Service) Get(ctx context.Context, callerID, id int) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrEntryNotFound) {
		err = fmt.Errorf("progress entry %d: %w", id, access.ErrNotFound)
	}
	return access.Check(callerID, entry, err)
}

func (s *Service) Create(ctx context.Context, callerID int, form Form) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if callerID <= 0 {
		return nil, access.ErrUnauthenticated
	}
	entry := &Entry{OwnerID: callerID}
	if err := apply(&form, entry); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Update(ctx context.Context, callerID, id int, form Form) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry, err := s.Get(ctx, callerID, id)
	if err != nil {
		return nil, err
	}
	if err := apply(&form, entry); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, callerID, id int) error {
	if _, err := s.Get(ctx, callerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func apply(form *Form, entry *Entry) error {
	forms.TrimSpace(form)
	verr := validation.Struct(*form)
	if verr == nil {
		verr = &validation.Error{}
	}
	date, _ := verr.Date("date", form.Date)

	var weight *float64
	if !form.Weight.Blank() {
		w, ok := form.Weight.Float()
		switch {
		case !ok:
			verr.Add("weight", validation.MsgInvalidNumber)
		case w < 0:
			verr.Add("weight", msgNotNegative)
		default:
			weight = &w
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}

	entry.Date = date
	entry.Weight = weight
	entry.BodyMeasurements = form.BodyMeasurements.String()
	entry.Notes = form.Notes.String()
	return nil
}
