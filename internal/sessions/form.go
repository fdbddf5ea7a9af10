package sessions

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/muscleforge/internal/duration"
	"github.com/2beens/muscleforge/internal/forms"
)

const (
	formsetPrefix = "entries-"
	// MaxEntryRows bounds a single submission.
	MaxEntryRows = 1000
	MaxExtraRows = 20
)

// Form is a session submission with its entry rows, every value as typed.
type Form struct {
	Date            forms.Field `json:"date"`
	Notes           forms.Field `json:"notes"`
	Hours           forms.Field `json:"hours"`
	Minutes         forms.Field `json:"minutes"`
	Seconds         forms.Field `json:"seconds"`
	DurationSeconds forms.Field `json:"durationSeconds"`
	Entries         []EntryForm `json:"entries"`
}

// EntryForm is one row. A blank ID means a new entry.
type EntryForm struct {
	ID       forms.Field `json:"id"`
	Exercise forms.Field `json:"exercise"`
	Reps     forms.Field `json:"reps"`
	Sets     forms.Field `json:"sets"`
	Weight   forms.Field `json:"weight"`
	Duration forms.Field `json:"duration"`
	Delete   bool        `json:"delete"`
}

func (f EntryForm) isNew() bool {
	return f.ID.Blank()
}

// blank reports whether the user left every input of the row empty.
func (f EntryForm) blank() bool {
	return f.Exercise.Blank() && f.Reps.Blank() && f.Sets.Blank() && f.Weight.Blank() && f.Duration.Blank()
}

// NewForm returns an empty form for date with extra blank rows.
func NewForm(date time.Time, extra int) Form {
	return Form{
		Date:    forms.Field(date.Format(forms.DateLayout)),
		Entries: blankRows(extra),
	}
}

// FormFor pre-fills a form from a stored session, followed by extra blank rows.
func FormFor(session *Session, extra int) Form {
	parts := duration.Decode(session.Duration)
	form := Form{
		Date:    forms.Field(session.Date.Format(forms.DateLayout)),
		Notes:   forms.Field(session.Notes),
		Hours:   forms.Field(strconv.Itoa(parts.Hours)),
		Minutes: forms.Field(strconv.Itoa(parts.Minutes)),
		Seconds: forms.Field(strconv.Itoa(parts.Seconds)),
	}
	for _, e := range session.Entries {
		row := EntryForm{
			ID:       forms.Field(strconv.Itoa(e.ID)),
			Exercise: forms.Field(strconv.Itoa(e.ExerciseID)),
			Reps:     forms.Field(strconv.Itoa(e.Reps)),
			Sets:     forms.Field(strconv.Itoa(e.Sets)),
		}
		if e.Weight != nil {
			row.Weight = forms.Field(strconv.FormatFloat(*e.Weight, 'f', -1, 64))
		}
		if e.Duration != nil {
			row.Duration = forms.Field(strconv.FormatInt(int64(*e.Duration/time.Second), 10))
		}
		form.Entries = append(form.Entries, row)
	}
	form.Entries = append(form.Entries, blankRows(extra)...)
	return form
}

func blankRows(n int) []EntryForm {
	if n < 0 {
		n = 0
	}
	if n > MaxExtraRows {
		n = MaxExtraRows
	}
	return make([]EntryForm, n)
}

// DecodeForm reads a JSON body or a url-encoded formset body where rows are
// sent as entries-TOTAL_FORMS, entries-0-exercise, entries-0-DELETE, ...
func DecodeForm(r *http.Request) (Form, error) {
	var form Form
	if forms.IsJSON(r) {
		if err := forms.Decode(r, &form); err != nil {
			return Form{}, err
		}
		if len(form.Entries) > MaxEntryRows {
			return Form{}, fmt.Errorf("too many entry rows: %d", len(form.Entries))
		}
		return form, nil
	}

	if err := forms.Decode(r, &form); err != nil {
		return Form{}, err
	}

	totalStr := r.PostForm.Get(formsetPrefix + "TOTAL_FORMS")
	if totalStr == "" {
		return form, nil
	}
	total, err := strconv.Atoi(totalStr)
	if err != nil || total < 0 {
		return Form{}, fmt.Errorf("invalid %sTOTAL_FORMS: %q", formsetPrefix, totalStr)
	}
	if total > MaxEntryRows {
		return Form{}, fmt.Errorf("too many entry rows: %d", total)
	}

	form.Entries = make([]EntryForm, total)
	for i := range form.Entries {
		prefix := fmt.Sprintf("%s%d-", formsetPrefix, i)
		if err := forms.DecodeValues(r.PostForm, &form.Entries[i], prefix); err != nil {
			return Form{}, err
		}
		if forms.Field(r.PostForm.Get(prefix + "DELETE")).Bool() {
			form.Entries[i].Delete = true
		}
	}
	return form, nil
}
