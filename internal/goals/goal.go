package goals

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/status"
)

var ErrGoalNotFound = errors.New("goal not found")

type Goal struct {
	ID          int           `json:"id"`
	OwnerID     int           `json:"ownerId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Status      status.Status `json:"status"`
}

func (g *Goal) Owner() int {
	return g.OwnerID
}

func (g Goal) MarshalJSON() ([]byte, error) {
	type plain Goal
	return json.Marshal(struct {
		plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}{
		plain:     plain(g),
		StartDate: g.StartDate.Format(forms.DateLayout),
		EndDate:   g.EndDate.Format(forms.DateLayout),
	})
}

// Stats feeds the completed vs. total goals chart.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Incomplete int `json:"incomplete"`
}

type Form struct {
	Title       forms.Field `json:"title" validate:"required,max=100"`
	Description forms.Field `json:"description" validate:"required,max=2000"`
	StartDate   forms.Field `json:"startDate"`
	EndDate     forms.Field `json:"endDate"`
	Status      forms.Field `json:"status"`
}
