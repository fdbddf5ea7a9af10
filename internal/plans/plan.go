package plans

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/forms"
	"github.com/2beens/muscleforge/internal/sessions"
	"github.com/2beens/muscleforge/internal/status"
)

var ErrPlanNotFound = errors.New("workout plan not found")

type Plan struct {
	ID        int           `json:"id"`
	OwnerID   int           `json:"ownerId"`
	Title     string        `json:"title"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Status    status.Status `json:"status"`
}

func (p *Plan) Owner() int {
	return p.OwnerID
}

func (p *Plan) Completed() bool {
	return p.Status.Done()
}

func (p Plan) MarshalJSON() ([]byte, error) {
	type plain Plan
	return json.Marshal(struct {
		plain
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Completed bool   `json:"completed"`
	}{
		plain:     plain(p),
		StartDate: p.StartDate.Format(forms.DateLayout),
		EndDate:   p.EndDate.Format(forms.DateLayout),
		Completed: p.Completed(),
	})
}

// Detail is a plan with its sessions, oldest first.
type Detail struct {
	Plan     *Plan              `json:"plan"`
	Sessions []sessions.Session `json:"sessions"`
}

type Form struct {
	Title     forms.Field `json:"title" validate:"required,max=100"`
	StartDate forms.Field `json:"startDate"`
	EndDate   forms.Field `json:"endDate"`
	Status    forms.Field `json:"status"`
}
