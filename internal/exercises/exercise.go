package exercises

import (
	"errors"
	"time"

	"github.com/2beens/muscleforge/internal/forms"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

type Exercise struct {
	ID          int        `json:"id"`
	OwnerID     int        `json:"ownerId"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    string     `json:"category"`
	Equipment   string     `json:"equipment"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (e *Exercise) Owner() int {
	return e.OwnerID
}

type Form struct {
	Name        forms.Field `json:"name" validate:"required,max=100"`
	Description forms.Field `json:"description" validate:"max=2000"`
	Difficulty  forms.Field `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	Category    forms.Field `json:"category" validate:"required,max=50"`
	Equipment   forms.Field `json:"equipment" validate:"max=100"`
}

func (f Form) apply(e *Exercise) {
	e.Name = f.Name.String()
	e.Description = f.Description.String()
	e.Difficulty = Difficulty(f.Difficulty.String())
	e.Category = f.Category.String()
	e.Equipment = f.Equipment.String()
}
