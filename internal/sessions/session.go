// Package sessions records workout sessions together with the exercises
// performed in them. A session and its entries are always written as one unit.
package sessions

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/duration"
	"github.com/2beens/muscleforge/internal/forms"
)

var (
	ErrPlanNotFound    = errors.New("workout plan not found")
	ErrSessionNotFound = errors.New("workout session not found")
	ErrEntryNotFound   = errors.New("session entry not found")
)

type Session struct {
	ID       int           `json:"id"`
	PlanID   int           `json:"planId"`
	OwnerID  int           `json:"ownerId"`
	Date     time.Time     `json:"date"`
	Duration time.Duration `json:"-"`
	Notes    string        `json:"notes"`
	Entries  []Entry       `json:"entries,omitempty"`
}

// Owner is the account owning the session's workout plan.
func (s *Session) Owner() int {
	return s.OwnerID
}

func (s Session) MarshalJSON() ([]byte, error) {
	type plain Session
	return json.Marshal(struct {
		plain
		Date            string `json:"date"`
		DurationSeconds int64  `json:"durationSeconds"`
		DurationText    string `json:"duration"`
	}{
		plain:           plain(s),
		Date:            s.Date.Format(forms.DateLayout),
		DurationSeconds: int64(s.Duration / time.Second),
		DurationText:    duration.Decode(s.Duration).String(),
	})
}

type Entry struct {
	ID           int            `json:"id"`
	SessionID    int            `json:"sessionId"`
	ExerciseID   int            `json:"exerciseId"`
	ExerciseName string         `json:"exerciseName"`
	Reps         int            `json:"reps"`
	Sets         int            `json:"sets"`
	Weight       *float64       `json:"weight"`
	Duration     *time.Duration `json:"-"`
	Position     int            `json:"position"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	var seconds *int64
	if e.Duration != nil {
		s := int64(*e.Duration / time.Second)
		seconds = &s
	}
	return json.Marshal(struct {
		plain
		DurationSeconds *int64 `json:"durationSeconds"`
	}{
		plain:           plain(e),
		DurationSeconds: seconds,
	})
}

type OpKind int

const (
	OpInsert OpKind = iota
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

type EntryOp struct {
	Kind  OpKind
	Entry Entry
}

// Changeset is everything a single submission writes. Session.ID == 0 means
// the session is new. Ops are applied in order, after the session row.
type Changeset struct {
	Session *Session
	Ops     []EntryOp
}
