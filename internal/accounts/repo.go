package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/muscleforge/internal/db"
	"github.com/2beens/muscleforge/internal/telemetry/tracing"
	"github.com/2beens/muscleforge/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// AfterWrite is called with the transaction that wrote the account row.
type AfterWrite func(q db.Querier) error

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create inserts the account and runs afterWrite in the same transaction.
// Either both persist or neither does.
func (r *Repo) Create(ctx context.Context, account *Account, afterWrite AfterWrite) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO account (username, email, password_hash)
			VALUES ($1, $2, $3)
			RETURNING id, created_at;`,
			account.Username, account.Email, account.PasswordHash,
		).Scan(&account.ID, &account.CreatedAt)
		if err != nil {
			if pkg.IsUniqueViolationError(err) {
				return ErrUsernameTaken
			}
			return fmt.Errorf("insert account: %w", err)
		}
		span.SetAttributes(attribute.Int("account.id", account.ID))

		if afterWrite == nil {
			return nil
		}
		return afterWrite(tx)
	})
}

// Update saves username and email, then runs afterWrite in the same transaction.
func (r *Repo) Update(ctx context.Context, account *Account, afterWrite AfterWrite) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", account.ID))

	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE account SET username = $1, email = $2 WHERE id = $3;`,
			account.Username, account.Email, account.ID,
		)
		if err != nil {
			if pkg.IsUniqueViolationError(err) {
				return ErrUsernameTaken
			}
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrAccountNotFound
		}

		if afterWrite == nil {
			return nil
		}
		return afterWrite(tx)
	})
}

func (r *Repo) Get(ctx context.Context, id int) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", id))

	return r.getWhere(ctx, `id = $1`, id)
}

func (r *Repo) GetByUsername(ctx context.Context, username string) (_ *Account, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.getbyusername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getWhere(ctx, `username = $1`, username)
}

func (r *Repo) getWhere(ctx context.Context, where string, arg any) (*Account, error) {
	account := &Account{}
	err := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, created_at FROM account WHERE `+where,
		arg,
	).Scan(&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Delete removes the account; the schema cascades to everything it owns.
func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.accounts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("account.id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM account WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
