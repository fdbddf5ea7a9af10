package exercises

import (
	"context"
	"errors"
	"fmt"

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

// InsertTemplates copies templates to ownerID in a single statement on q.
func (r *Repo) InsertTemplates(ctx context.Context, q db.Querier, ownerID int, templates []Template) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.inserttemplates")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", ownerID))

	n := len(templates)
	names, descriptions := make([]string, n), make([]string, n)
	difficulties, categories, equipment := make([]string, n), make([]string, n), make([]string, n)
	for i, t := range templates {
		names[i] = t.Name
		descriptions[i] = t.Description
		difficulties[i] = string(t.Difficulty)
		categories[i] = t.Category
		equipment[i] = t.Equipment
	}

	tag, err := q.Exec(ctx, `
		INSERT INTO exercise (account_id, name, description, difficulty, category, equipment)
		SELECT $1, t.name, t.description, t.difficulty, t.category, t.equipment
		FROM unnest($2::text[], $3::text[], $4::text[], $5::text[], $6::text[])
			WITH ORDINALITY AS t(name, description, difficulty, category, equipment, ord)
		ORDER BY t.ord;`,
		ownerID, names, descriptions, difficulties, categories, equipment,
	)
	if err != nil {
		return 0, fmt.Errorf("insert templates: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) List(ctx context.Context, ownerID int) (_ []Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, name, description, difficulty, category, equipment, created_at
		FROM exercise
		WHERE account_id = $1
		ORDER BY category, name, id;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []Exercise
	for rows.Next() {
		var e Exercise
		var difficulty string
		if err := rows.Scan(
			&e.ID, &e.OwnerID, &e.Name, &e.Description, &difficulty, &e.Category, &e.Equipment, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Difficulty = Difficulty(difficulty)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var e Exercise
	var difficulty string
	err = r.db.QueryRow(ctx, `
		SELECT id, account_id, name, description, difficulty, category, equipment, created_at
		FROM exercise
		WHERE id = $1;`,
		id,
	).Scan(&e.ID, &e.OwnerID, &e.Name, &e.Description, &difficulty, &e.Category, &e.Equipment, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrExerciseNotFound
	}
	if err != nil {
		return nil, err
	}
	e.Difficulty = Difficulty(difficulty)
	return &e, nil
}

func (r *Repo) Create(ctx context.Context, e *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.db.QueryRow(ctx, `
		INSERT INTO exercise (account_id, name, description, difficulty, category, equipment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;`,
		e.OwnerID, e.Name, e.Description, string(e.Difficulty), e.Category, e.Equipment,
	).Scan(&e.ID, &e.CreatedAt)
}

func (r *Repo) Update(ctx context.Context, e *Exercise) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE exercise
		SET name = $1, description = $2, difficulty = $3, category = $4, equipment = $5
		WHERE id = $6;`,
		e.Name, e.Description, string(e.Difficulty), e.Category, e.Equipment, e.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// Delete removes the exercise and, through the FK cascade, every session entry using it.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `DELETE FROM exercise WHERE id = $1;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

// OwnedNames returns id -> name for those ids that exist and belong to ownerID.
func (r *Repo) OwnedNames(ctx context.Context, ownerID int, ids []int) (_ map[int]string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.ownednames")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	owned := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return owned, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name
		FROM exercise
		WHERE account_id = $1 AND id = ANY($2);`,
		ownerID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		owned[id] = name
	}
	return owned, rows.Err()
}
