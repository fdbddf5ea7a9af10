package sessions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/2beens/muscleforge/internal/access"
	"github.com/2beens/muscleforge/internal/duration"
	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/telemetry/metrics"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/internal/validation"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	msgMinOne          = "Ensure this value is greater than or equal to 1."
	msgTooLong         = "This duration is too long."
	msgNotNegative     = "Ensure this value is greater than or equal to 0."
	msgUnknownExercise = "Select a valid choice. That choice is not one of the available choices."
	msgUnknownEntry    = "Select a valid choice. That entry does not belong to this session."
	msgDuplicateEntry  = "This entry was submitted more than once."
	maxNotesLength     = 2000
)

// reps and sets are INTEGER columns.
var msgMaxInt32 = "Ensure this value is less than or equal to " + strconv.Itoa(math.MaxInt32) + "."

type sessionsRepo interface {
	PlanOwner(ctx context.Context, planID int) (int, error)
	Get(ctx context.Context, id int) (*Session, error)
	ListByPlan(ctx context.Context, planID int) ([]Session, error)
	Entries(ctx context.Context, sessionID int) ([]Entry, error)
	Apply(ctx context.Context, cs *Changeset) error
	Delete(ctx context.Context, id int) error
}

// exerciseResolver tells which of the given exercise ids the caller owns.
type exerciseResolver interface {
	OwnedNames(ctx context.Context, callerID int, ids []int) (map[int]string, error)
}

type Service struct {
	repo      sessionsRepo
	exercises exerciseResolver
	metrics   *metrics.Manager
	now       func() time.Time
}

func NewService(repo sessionsRepo, exercises exerciseResolver, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:      repo,
		exercises: exercises,
		metrics:   metricsManager,
		now:       time.Now,
	}
}

func (s *Service) authorizePlan(ctx context.Context, callerID, planID int) error {
	if callerID <= 0 {
		return access.ErrUnauthenticated
	}
	ownerID, err := s.repo.PlanOwner(ctx, planID)
	if errors.Is(err, ErrPlanNotFound) {
		return fmt.Errorf("plan %d: %w", planID, access.ErrNotFound)
	}
	if err != nil {
		return err
	}
	return access.Authorize(callerID, ownerID)
}

// session loads a session of planID owned by callerID. A session that exists
// under a different plan is reported as not found.
func (s *Service) session(ctx context.Context, callerID, planID, sessionID int) (*Session, error) {
	session, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) || (err == nil && session.PlanID != planID) {
		return nil, fmt.Errorf("session %d of plan %d: %w", sessionID, planID, access.ErrNotFound)
	}
	return access.Check(callerID, session, err)
}

func (s *Service) List(ctx context.Context, callerID, planID int) ([]Session, error) {
	if err := s.authorizePlan(ctx, callerID, planID); err != nil {
		return nil, err
	}
	return s.repo.ListByPlan(ctx, planID)
}

// Get returns the session with its entries.
func (s *Service) Get(ctx context.Context, callerID, planID, sessionID int) (*Session, error) {
	if err := s.authorizePlan(ctx, callerID, planID); err != nil {
		return nil, err
	}
	session, err := s.session(ctx, callerID, planID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Entries, err = s.repo.Entries(ctx, sessionID); err != nil {
		return nil, err
	}
	return session, nil
}

// NewForm returns a blank form for a new session of the plan.
func (s *Service) NewForm(ctx context.Context, callerID, planID, extra int) (Form, error) {
	if err := s.authorizePlan(ctx, callerID, planID); err != nil {
		return Form{}, err
	}
	return NewForm(s.now(), extra), nil
}

// EditForm returns the form pre-filled with the stored session.
func (s *Service) EditForm(ctx context.Context, callerID, planID, sessionID, extra int) (Form, error) {
	session, err := s.Get(ctx, callerID, planID, sessionID)
	if err != nil {
		return Form{}, err
	}
	return FormFor(session, extra), nil
}

func (s *Service) Delete(ctx context.Context, callerID, planID, sessionID int) error {
	if err := s.authorizePlan(ctx, callerID, planID); err != nil {
		return err
	}
	if _, err := s.session(ctx, callerID, planID, sessionID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, sessionID)
}

// Save validates and stores a session submission. sessionID 0 creates a new
// session. The plan (and the session when editing) is authorized first, then
// the session fields are validated; only a valid session gets its rows
// validated. Any error leaves the database untouched.
func (s *Service) Save(ctx context.Context, callerID, planID, sessionID int, form Form) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.sessions.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("plan.id", planID),
		attribute.Int("session.id", sessionID),
		attribute.Int("rows.count", len(form.Entries)),
	)

	if err := s.authorizePlan(ctx, callerID, planID); err != nil {
		return nil, err
	}

	// validation trims in place, the caller's rows stay as typed
	form.Entries = slices.Clone(form.Entries)

	session := &Session{PlanID: planID, OwnerID: callerID}
	existing := map[int]Entry{}
	if sessionID > 0 {
		if session, err = s.session(ctx, callerID, planID, sessionID); err != nil {
			return nil, err
		}
		entries, err := s.repo.Entries(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			existing[e.ID] = e
		}
	}

	if verr := validateParent(&form, session); verr != nil {
		return nil, verr
	}

	changeset, verr, err := s.validateRows(ctx, callerID, form.Entries, existing)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return nil, verr
	}
	changeset.Session = session

	if err := s.repo.Apply(ctx, changeset); err != nil {
		return nil, err
	}

	op := "create"
	if sessionID > 0 {
		op = "update"
	}
	kept := 0
	for _, o := range changeset.Ops {
		if o.Kind != OpDelete {
			kept++
		}
	}
	if s.metrics != nil {
		s.metrics.CounterSessionsSaved.WithLabelValues(op).Inc()
		s.metrics.HistSessionEntries.Observe(float64(kept))
	}
	log.Debugf("session %d of plan %d saved (%s), %d entry ops", session.ID, planID, op, len(changeset.Ops))

	if session.Entries, err = s.repo.Entries(ctx, session.ID); err != nil {
		return nil, err
	}
	return session, nil
}

// validateParent checks the session fields and copies them into session.
func validateParent(form *Form, session *Session) *validation.Error {
	forms.TrimSpace(form)
	verr := &validation.Error{}

	if form.Date.Blank() {
		verr.Add("date", validation.MsgRequired)
	} else if date, ok := form.Date.Date(); !ok {
		verr.Add("date", validation.MsgInvalidDate)
	} else {
		session.Date = date
	}

	d, err := duration.FromForm(form.Hours.String(), form.Minutes.String(), form.Seconds.String(), form.DurationSeconds.String())
	var fe *duration.FieldError
	switch {
	case errors.As(err, &fe):
		field := fe.Field
		if field == "duration" {
			field = "durationSeconds"
		}
		switch {
		case errors.Is(fe, duration.ErrNegative):
			verr.Add(field, msgNotNegative)
		case errors.Is(fe, duration.ErrTooLong):
			verr.Add(field, msgTooLong)
		default:
			verr.Add(field, validation.MsgInvalidInt)
		}
	case err != nil:
		verr.Add("duration", err.Error())
	default:
		session.Duration = d
	}

	if notes := form.Notes.String(); len([]rune(notes)) > maxNotesLength {
		verr.Add("notes", fmt.Sprintf("Ensure this value has at most %d characters.", maxNotesLength))
	} else {
		session.Notes = notes
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// validateRows turns the submitted rows into entry ops. Deleted new rows and
// untouched blank new rows are dropped. Row errors are keyed by the row's
// index in the submission.
func (s *Service) validateRows(
	ctx context.Context,
	callerID int,
	rows []EntryForm,
	existing map[int]Entry,
) (*Changeset, *validation.Error, error) {
	verr := &validation.Error{}
	cs := &Changeset{}
	seen := map[int]bool{}
	opRows := make([]int, 0, len(rows))
	var exerciseIDs []int

	for i := range rows {
		row := &rows[i]
		forms.TrimSpace(row)

		var entry Entry
		if !row.isNew() {
			id, ok := row.ID.Int()
			if _, known := existing[id]; !ok || !known {
				verr.AddRow(i, "id", msgUnknownEntry)
				continue
			}
			if seen[id] {
				verr.AddRow(i, "id", msgDuplicateEntry)
				continue
			}
			seen[id] = true
			entry.ID = id
			if row.Delete {
				cs.Ops = append(cs.Ops, EntryOp{Kind: OpDelete, Entry: entry})
				opRows = append(opRows, i)
				continue
			}
		} else if row.Delete || row.blank() {
			continue
		}

		if row.Exercise.Blank() {
			verr.AddRow(i, "exercise", validation.MsgRequired)
		} else if id, ok := row.Exercise.Int(); !ok || id <= 0 {
			verr.AddRow(i, "exercise", msgUnknownExercise)
		} else {
			entry.ExerciseID = id
			exerciseIDs = append(exerciseIDs, id)
		}

		entry.Reps = positiveInt(verr, i, "reps", row.Reps)
		entry.Sets = positiveInt(verr, i, "sets", row.Sets)

		if !row.Weight.Blank() {
			w, ok := row.Weight.Float()
			switch {
			case !ok:
				verr.AddRow(i, "weight", validation.MsgInvalidNumber)
			case w < 0:
				verr.AddRow(i, "weight", msgNotNegative)
			default:
				entry.Weight = &w
			}
		}
		if !row.Duration.Blank() {
			secs, ok := row.Duration.Int()
			switch {
			case !ok:
				verr.AddRow(i, "duration", validation.MsgInvalidInt)
			case secs < 0:
				verr.AddRow(i, "duration", msgNotNegative)
			case secs > duration.MaxSeconds:
				verr.AddRow(i, "duration", msgTooLong)
			default:
				d := time.Duration(secs) * time.Second
				entry.Duration = &d
			}
		}

		kind := OpInsert
		if entry.ID > 0 {
			kind = OpUpdate
		}
		cs.Ops = append(cs.Ops, EntryOp{Kind: kind, Entry: entry})
		opRows = append(opRows, i)
	}

	if len(exerciseIDs) > 0 {
		owned, err := s.exercises.OwnedNames(ctx, callerID, exerciseIDs)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve exercises: %w", err)
		}
		for n := range cs.Ops {
			op := &cs.Ops[n]
			if op.Kind == OpDelete || op.Entry.ExerciseID == 0 {
				continue
			}
			name, ok := owned[op.Entry.ExerciseID]
			if !ok {
				verr.AddRow(opRows[n], "exercise", msgUnknownExercise)
				continue
			}
			op.Entry.ExerciseName = name
		}
	}

	if !verr.Empty() {
		return nil, verr, nil
	}

	position := 0
	for n := range cs.Ops {
		if cs.Ops[n].Kind == OpDelete {
			continue
		}
		cs.Ops[n].Entry.Position = position
		position++
	}
	return cs, nil, nil
}

func positiveInt(verr *validation.Error, row int, field string, v forms.Field) int {
	if v.Blank() {
		verr.AddRow(row, field, validation.MsgRequired)
		return 0
	}
	n, ok := v.Int()
	if !ok {
		verr.AddRow(row, field, validation.MsgInvalidInt)
		return 0
	}
	if n < 1 {
		verr.AddRow(row, field, msgMinOne)
		return 0
	}
	if n > math.MaxInt32 {
		verr.AddRow(row, field, msgMaxInt32)
		return 0
	}
	return n
}
