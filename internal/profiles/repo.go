package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/db"
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

// Insert runs on q, the transaction that created the owning account.
func (r *Repo) Insert(ctx context.Context, q db.Querier, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = q.QueryRow(ctx, `
		INSERT INTO profile (account_id, height, weight, gender, age, fitness_goals, picture_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;`,
		profile.AccountID, profile.Height, profile.Weight, string(profile.Gender),
		profile.Age, profile.FitnessGoals, profile.PictureRef,
	).Scan(&profile.ID)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, accountID int) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var p Profile
	var gender string
	err = r.db.QueryRow(ctx, `
		SELECT id, account_id, height, weight, gender, age, fitness_goals, picture_ref
		FROM profile
		WHERE account_id = $1;`,
		accountID,
	).Scan(&p.ID, &p.AccountID, &p.Height, &p.Weight, &gender, &p.Age, &p.FitnessGoals, &p.PictureRef)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	p.Gender = Gender(gender)
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, profile *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `
		UPDATE profile
		SET height = $1, weight = $2, gender = $3, age = $4, fitness_goals = $5, picture_ref = $6
		WHERE account_id = $7;`,
		profile.Height, profile.Weight, string(profile.Gender), profile.Age,
		profile.FitnessGoals, profile.PictureRef, profile.AccountID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
