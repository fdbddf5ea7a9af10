package profiles

import (
	"errors"

	"github.com/2beens/muscleforge/internal/forms"
)

const DefaultPicture = "default.svg"

var ErrProfileNotFound = errors.New("profile not found")

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale:
		return true
	}
	return false
}

type Profile struct {
	ID           int      `json:"id"`
	AccountID    int      `json:"accountId"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Age          *int     `json:"age"`
	Gender       Gender   `json:"gender"`
	FitnessGoals string   `json:"fitnessGoals"`
	PictureRef   string   `json:"pictureRef"`
}

func (p *Profile) Owner() int {
	return p.AccountID
}

// Form holds the submitted profile values as typed by the user.
type Form struct {
	Height       forms.Field `json:"height"`
	Weight       forms.Field `json:"weight"`
	Age          forms.Field `json:"age"`
	Gender       forms.Field `json:"gender" validate:"omitempty,oneof=M F"`
	FitnessGoals forms.Field `json:"fitnessGoals" validate:"max=2000"`
	PictureRef   forms.Field `json:"pictureRef" validate:"max=255"`
}
