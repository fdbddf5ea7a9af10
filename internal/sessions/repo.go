package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/muscleforge/internal/db"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// PlanOwner returns the account owning the workout plan.
func (r *Repo) PlanOwner(ctx context.Context, planID int) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.planowner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var ownerID int
	err = r.db.QueryRow(ctx, `SELECT account_id FROM workout_plan WHERE id = $1;`, planID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrPlanNotFound
	}
	return ownerID, err
}

// Get loads a session, with its owner resolved through the plan. Entries are not loaded.
func (r *Repo) Get(ctx context.Context, id int) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var s Session
	var seconds int64
	err = r.db.QueryRow(ctx, `
		SELECT s.id, s.plan_id, p.account_id, s.date, s.duration_seconds, s.notes
		FROM workout_session s
			JOIN workout_plan p ON p.id = s.plan_id
		WHERE s.id = $1;`,
		id,
	).Scan(&s.ID, &s.PlanID, &s.OwnerID, &s.Date, &seconds, &s.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Duration = time.Duration(seconds) * time.Second
	return &s, nil
}

func (r *Repo) ListByPlan(ctx context.Context, planID int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listbyplan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))

	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.plan_id, p.account_id, s.date, s.duration_seconds, s.notes
		FROM workout_session s
			JOIN workout_plan p ON p.id = s.plan_id
		WHERE s.plan_id = $1
		ORDER BY s.date, s.id;`,
		planID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var seconds int64
		if err := rows.Scan(&s.ID, &s.PlanID, &s.OwnerID, &s.Date, &seconds, &s.Notes); err != nil {
			return nil, err
		}
		s.Duration = time.Duration(seconds) * time.Second
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repo) Entries(ctx context.Context, sessionID int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.entries")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT es.id, es.session_id, es.exercise_id, e.name, es.reps, es.sets, es.weight, es.duration_seconds, es.position
		FROM exercise_in_session es
			JOIN exercise e ON e.id = es.exercise_id
		WHERE es.session_id = $1
		ORDER BY es.position, es.id;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var seconds *int64
		if err := rows.Scan(
			&e.ID, &e.SessionID, &e.ExerciseID, &e.ExerciseName, &e.Reps, &e.Sets, &e.Weight, &seconds, &e.Position,
		); err != nil {
			return nil, err
		}
		if seconds != nil {
			d := time.Duration(*seconds) * time.Second
			e.Duration = &d
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Apply writes the changeset in one transaction: the session row first, then
// every entry op in order. Nothing is written unless everything succeeds.
func (r *Repo) Apply(ctx context.Context, cs *Changeset) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.apply")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("ops.count", len(cs.Ops)))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := saveSession(ctx, tx, cs.Session); err != nil {
			return err
		}
		for i := range cs.Ops {
			op := &cs.Ops[i]
			op.Entry.SessionID = cs.Session.ID
			if err := applyOp(ctx, tx, op); err != nil {
				return fmt.Errorf("entry op %d (%s): %w", i, op.Kind, err)
			}
		}
		return nil
	})
}

func saveSession(ctx context.Context, q db.Querier, s *Session) error {
	seconds := int64(s.Duration / time.Second)
	if s.ID == 0 {
		err := q.QueryRow(ctx, `
			INSERT INTO workout_session (plan_id, date, duration_seconds, notes)
			VALUES ($1, $2, $3, $4)
			RETURNING id;`,
			s.PlanID, s.Date, seconds, s.Notes,
		).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		return nil
	}

	tag, err := q.Exec(ctx, `
		UPDATE workout_session
		SET date = $1, duration_seconds = $2, notes = $3
		WHERE id = $4 AND plan_id = $5;`,
		s.Date, seconds, s.Notes, s.ID, s.PlanID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func applyOp(ctx context.Context, q db.Querier, op *EntryOp) error {
	e := &op.Entry
	var seconds *int64
	if e.Duration != nil {
		s := int64(*e.Duration / time.Second)
		seconds = &s
	}

	switch op.Kind {
	case OpInsert:
		return q.QueryRow(ctx, `
			INSERT INTO exercise_in_session (session_id, exercise_id, reps, sets, weight, duration_seconds, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id;`,
			e.SessionID, e.ExerciseID, e.Reps, e.Sets, e.Weight, seconds, e.Position,
		).Scan(&e.ID)
	case OpUpdate:
		tag, err := q.Exec(ctx, `
			UPDATE exercise_in_session
			SET exercise_id = $1, reps = $2, sets = $3, weight = $4, duration_seconds = $5, position = $6
			WHERE id = $7 AND session_id = $8;`,
			e.ExerciseID, e.Reps, e.Sets, e.Weight, seconds, e.Position, e.ID, e.SessionID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrEntryNotFound
		}
		return nil
	case OpDelete:
		tag, err := q.Exec(ctx, `DELETE FROM exercise_in_session WHERE id = $1 AND session_id = $2;`, e.ID, e.SessionID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrEntryNotFound
		}
		return nil
	}
	return fmt.Errorf("unknown op kind %d", op.Kind)
}

// Delete removes the session, its entries go with it through the FK cascade.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_session WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}
