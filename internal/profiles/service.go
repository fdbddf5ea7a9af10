package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/accounts"
	"github.com/2beens/muscleforge/internal/db"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"

	log "github.com/sirupsen/logrus"
)

type profilesRepo interface {
	Insert(ctx context.Context, q db.Querier, profile *Profile) error
	Get(ctx context.Context, accountID int) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
}

type Service struct {
	repo profilesRepo
}

func NewService(repo profilesRepo) *Service {
	return &Service{repo: repo}
}

// OnAccountSaved creates the empty profile of a newly created account.
func (s *Service) OnAccountSaved(ctx context.Context, q db.Querier, account *accounts.Account, created bool) error {
	if !created {
		return nil
	}
	log.Debugf("creating profile for account %d", account.ID)
	return s.repo.Insert(ctx, q, &Profile{
		AccountID:  account.ID,
		PictureRef: DefaultPicture,
	})
}

func (s *Service) Get(ctx context.Context, callerID int) (*Profile, error) {
	profile, err := s.repo.Get(ctx, callerID)
	if errors.Is(err, ErrProfileNotFound) {
		err = fmt.Errorf("profile of %d: %w", callerID, access.ErrNotFound)
	}
	return access.Check(callerID, profile, err)
}

func (s *Service) Update(ctx context.Context, callerID int, form Form) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profiles.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	profile, err := s.Get(ctx, callerID)
	if err != nil {
		return nil, err
	}

	forms.TrimSpace(&form)
	verr := validation.Struct(form)
	if verr == nil {
		verr = &validation.Error{}
	}
	profile.Height = positiveFloat(verr, "height", form.Height)
	profile.Weight = positiveFloat(verr, "weight", form.Weight)
	profile.Age = nil
	if !form.Age.Blank() {
		age, ok := form.Age.Int()
		switch {
		case !ok:
			verr.Add("age", validation.MsgInvalidInt)
		case age < 0 || age > 150:
			verr.Add("age", "Ensure this value is between 0 and 150.")
		default:
			profile.Age = &age
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	profile.Gender = Gender(form.Gender)
	profile.FitnessGoals = form.FitnessGoals.String()
	profile.PictureRef = form.PictureRef.String()
	if profile.PictureRef == "" {
		profile.PictureRef = DefaultPicture
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func positiveFloat(verr *validation.Error, field string, v forms.Field) *float64 {
	if v.Blank() {
		return nil
	}
	n, ok := v.Float()
	if !ok {
		verr.Add(field, validation.MsgInvalidNumber)
		return nil
	}
	if n <= 0 {
		verr.Add(field, "Ensure this value is greater than 0.")
		return nil
	}
	return &n
}
