package goals

import (
	"context"
	"errors"

	"github.com/2beens/muscleforge/internal/status"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) List(ctx context.Context, ownerID int) (_ []Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, title, description, start_date, end_date, status
		FROM goal
		WHERE account_id = $1
		ORDER BY start_date, id;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		var s string
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.StartDate, &g.EndDate, &s); err != nil {
			return nil, err
		}
		g.Status = status.Status(s)
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var g Goal
	var s string
	err = r.db.QueryRow(ctx, `
		SELECT id, account_id, title, description, start_date, end_date, status
		FROM goal
		WHERE id = $1;`,
		id,
	).Scan(&g.ID, &g.OwnerID, &g.Title, &g.Description, &g.StartDate, &g.EndDate, &s)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	g.Status = status.Status(s)
	return &g, nil
}

func (r *Repo) Create(ctx context.Context, g *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.db.QueryRow(ctx, `
		INSERT INTO goal (account_id, title, description, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;`,
		g.OwnerID, g.Title, g.Description, g.StartDate, g.EndDate, string(g.Status),
	).Scan(&g.ID)
}

func (r *Repo) Update(ctx context.Context, g *Goal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE goal
		SET title = $1, description = $2, start_date = $3, end_date = $4, status = $5
		WHERE id = $6;`,
		g.Title, g.Description, g.StartDate, g.EndDate, string(g.Status), g.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM goal WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *Repo) Stats(ctx context.Context, ownerID int) (_ Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var stats Stats
	err = r.db.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE status = $2)
		FROM goal
		WHERE account_id = $1;`,
		ownerID, string(status.Completed),
	).Scan(&stats.Total, &stats.Completed)
	if err != nil {
		return Stats{}, err
	}
	stats.Incomplete = stats.Total - stats.Completed
	return stats, nil
}
