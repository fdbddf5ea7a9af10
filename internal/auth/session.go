package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "muscleforge-session||"
	tokensSetKey     = "muscleforge-sessions"
	tokenLength      = 40
)

var (
	ErrNotLogged       = errors.New("not logged in")
	ErrMalformedRecord = errors.New("malformed session record")
)

// LoginSession is what a token resolves to.
type LoginSession struct {
	AccountID int
	CreatedAt time.Time
}

func (s LoginSession) encode() string {
	return fmt.Sprintf("%d:%d", s.AccountID, s.CreatedAt.Unix())
}

func decodeSession(v string) (LoginSession, error) {
	accountIDStr, createdAtStr, found := strings.Cut(v, ":")
	if !found {
		return LoginSession{}, ErrMalformedRecord
	}
	accountID, err := strconv.Atoi(accountIDStr)
	if err != nil || accountID <= 0 {
		return LoginSession{}, ErrMalformedRecord
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return LoginSession{}, ErrMalformedRecord
	}
	return LoginSession{
		AccountID: accountID,
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}

func (s LoginSession) expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// TokenFromRequest reads "Authorization: Bearer <token>".
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
