package validation

import (
	"time"

	"github.com/2beens/muscleforge/internal/forms"
)

const MsgEndBeforeStart = "End date must not be before start date."

// Date parses a required date field, recording an error under field when it
// is blank or malformed.
func (e *Error) Date(field string, v forms.Field) (time.Time, bool) {
	if v.Blank() {
		e.Add(field, MsgRequired)
		return time.Time{}, false
	}
	t, ok := v.Date()
	if !ok {
		e.Add(field, MsgInvalidDate)
	}
	return t, ok
}

// DateRange parses a required start/end pair. The end may equal the start but
// never precede it; the error then goes to endField.
func (e *Error) DateRange(startField, endField string, start, end forms.Field) (time.Time, time.Time) {
	s, okStart := e.Date(startField, start)
	t, okEnd := e.Date(endField, end)
	if okStart && okEnd && t.Before(s) {
		e.Add(endField, MsgEndBeforeStart)
	}
	return s, t
}
