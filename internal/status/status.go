package status

import (
	"encoding/json"
	"fmt"
)

// Status is the lifecycle shared by workout plans and goals.
type Status string

const (
	NotStarted Status = "not_started"
	InProgress Status = "in_progress"
	Completed  Status = "completed"
)

var All = []Status{NotStarted, InProgress, Completed}

func (s Status) Valid() bool {
	switch s {
	case NotStarted, InProgress, Completed:
		return true
	}
	return false
}

func (s Status) Done() bool {
	return s == Completed
}

// Parse accepts the canonical values; blank means NotStarted.
func Parse(v string) (Status, error) {
	if v == "" {
		return NotStarted, nil
	}
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q", v)
	}
	return s, nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
