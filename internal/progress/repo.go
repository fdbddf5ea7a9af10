package progress

import (
	"context"
	"errors"

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

// List returns ownerID's entries, newest first.
func (r *Repo) List(ctx context.Context, ownerID int) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, date, weight, body_measurements, notes
		FROM progress_entry
		WHERE account_id = $1
		ORDER BY date DESC, id DESC;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Date, &e.Weight, &e.BodyMeasurements, &e.Notes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var e Entry
	err = r.db.QueryRow(ctx, `
		SELECT id, account_id, date, weight, body_measurements, notes
		FROM progress_entry
		WHERE id = $1;`,
		id,
	).Scan(&e.ID, &e.OwnerID, &e.Date, &e.Weight, &e.BodyMeasurements, &e.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Create(ctx context.Context, e *Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.db.QueryRow(ctx, `
		INSERT INTO progress_entry (account_id, date, weight, body_measurements, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;`,
		e.OwnerID, e.Date, e.Weight, e.BodyMeasurements, e.Notes,
	).Scan(&e.ID)
}

func (r *Repo) Update(ctx context.Context, e *Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE progress_entry
		SET date = $1, weight = $2, body_measurements = $3, notes = $4
		WHERE id = $5;`,
		e.Date, e.Weight, e.BodyMeasurements, e.Notes, e.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.progress.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM progress_entry WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}
