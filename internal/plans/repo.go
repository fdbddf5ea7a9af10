package plans

import (
	"context"
	"errors"

	"github.com/2beens/muscleforge/internal/status"
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

func (r *Repo) List(ctx context.Context, ownerID int) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", ownerID))

	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, title, start_date, end_date, status
		FROM workout_plan
		WHERE account_id = $1
		ORDER BY start_date, id;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var s string
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Title, &p.StartDate, &p.EndDate, &s); err != nil {
			return nil, err
		}
		p.Status = status.Status(s)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Plan
	var s string
	err = r.db.QueryRow(ctx, `
		SELECT id, account_id, title, start_date, end_date, status
		FROM workout_plan
		WHERE id = $1;`,
		id,
	).Scan(&p.ID, &p.OwnerID, &p.Title, &p.StartDate, &p.EndDate, &s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Status = status.Status(s)
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, p *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.db.QueryRow(ctx, `
		INSERT INTO workout_plan (account_id, title, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		p.OwnerID, p.Title, p.StartDate, p.EndDate, string(p.Status),
	).Scan(&p.ID)
}

func (r *Repo) Update(ctx context.Context, p *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE workout_plan
		SET title = $1, start_date = $2, end_date = $3, status = $4
		WHERE id = $5;`,
		p.Title, p.StartDate, p.EndDate, string(p.Status), p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Delete removes the plan. Its sessions and their entries go with it (FK cascade).
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM workout_plan WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}
