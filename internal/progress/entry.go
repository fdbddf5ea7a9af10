package progress

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/forms"
)

var ErrEntryNotFound = errors.New("progress entry not found")

// Entry is one body check-in.
type Entry struct {
	ID               int       `json:"id"`
	OwnerID          int       `json:"ownerId"`
	Date             time.Time `json:"date"`
	Weight           *float64  `json:"weight"`
	BodyMeasurements string    `json:"bodyMeasurements"`
	Notes            string    `json:"notes"`
}

func (e *Entry) Owner() int {
	return e.OwnerID
}

func (e Entry) MarshalJSON() ([]byte, error) {
	type plain Entry
	return json.Marshal(struct {
		plain
		Date string `json:"date"`
	}{
		plain: plain(e),
		Date:  e.Date.Format(forms.DateLayout),
	})
}

type Form struct {
	Date             forms.Field `json:"date"`
	Weight           forms.Field `json:"weight"`
	BodyMeasurements forms.Field `json:"bodyMeasurements" validate:"max=2000"`
	Notes            forms.Field `json:"notes" validate:"max=2000"`
}
