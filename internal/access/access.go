// Package access decides whether a caller may touch a record.
//
// Lookups always happen first: a record that does not exist is ErrNotFound
// regardless of who asks, and only an existing record is checked for ownership.
// Nested records (sessions, session entries) are checked against the account
// owning their root workout plan, which the repositories resolve with a join.
package access

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)

// Authorize allows the call only when the caller owns the record.
func Authorize(callerID, ownerID int) error {
	if callerID <= 0 {
		return ErrUnauthenticated
	}
	if callerID != ownerID {
		return ErrForbidden
	}
	return nil
}

// Owned is implemented by every record carrying an owning account.
type Owned interface {
	Owner() int
}

// Check combines the lookup result with the ownership decision:
// lookup errors pass through unchanged, a found record is authorized.
func Check[T Owned](callerID int, record T, lookupErr error) (T, error) {
	var zero T
	if lookupErr != nil {
		return zero, lookupErr
	}
	if err := Authorize(callerID, record.Owner()); err != nil {
		return zero, err
	}
	return record, nil
}

type callerKey struct{}

// WithCaller stores the authenticated account id. Only the auth middleware calls it.
func WithCaller(ctx context.Context, accountID int) context.Context {
	return context.WithValue(ctx, callerKey{}, accountID)
}

func CallerFrom(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(callerKey{}).(int)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}
