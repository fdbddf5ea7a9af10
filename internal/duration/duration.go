// Package duration converts between a stored time.Duration and the
// hours/minutes/seconds triple users type into forms.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// MaxSeconds is the longest duration time.Duration can hold, in whole seconds.
const MaxSeconds = math.MaxInt64 / int(time.Second)

var (
	ErrNegative = errors.New("duration components must not be negative")
	ErrTooLong  = errors.New("duration is too long")
)

type Parts struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Encode returns hours*3600 + minutes*60 + seconds.
// Components are not required to be normalized: (0, 90, 0) is 5400s.
func Encode(p Parts) (time.Duration, error) {
	if p.Hours < 0 || p.Minutes < 0 || p.Seconds < 0 {
		return 0, ErrNegative
	}
	if p.Hours > MaxSeconds/3600 || p.Minutes > MaxSeconds/60 || p.Seconds > MaxSeconds {
		return 0, ErrTooLong
	}
	total := p.Hours*3600 + p.Minutes*60 + p.Seconds
	if total > MaxSeconds {
		return 0, ErrTooLong
	}
	return time.Duration(total) * time.Second, nil
}

// Decode splits d into normalized parts, dropping sub-second precision.
func Decode(d time.Duration) Parts {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return Parts{
		Hours:   total / 3600,
		Minutes: total % 3600 / 60,
		Seconds: total % 60,
	}
}

func (p Parts) String() string {
	return fmt.Sprintf("%d:%02d:%02d", p.Hours, p.Minutes, p.Seconds)
}

// FieldError names the offending form field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FromForm parses the submitted duration inputs. A blank component counts as 0.
// The hours/minutes/seconds inputs win; rawSeconds is only used when all three are blank.
func FromForm(hours, minutes, seconds, rawSeconds string) (time.Duration, error) {
	hours, minutes, seconds = strings.TrimSpace(hours), strings.TrimSpace(minutes), strings.TrimSpace(seconds)
	if hours == "" && minutes == "" && seconds == "" {
		raw, err := parseComponent("duration", rawSeconds)
		if err != nil {
			return 0, err
		}
		d, err := Encode(Parts{Seconds: raw})
		if err != nil {
			return 0, &FieldError{Field: "duration", Err: err}
		}
		return d, nil
	}

	h, err := parseComponent("hours", hours)
	if err != nil {
		return 0, err
	}
	m, err := parseComponent("minutes", minutes)
	if err != nil {
		return 0, err
	}
	s, err := parseComponent("seconds", seconds)
	if err != nil {
		return 0, err
	}
	d, err := Encode(Parts{Hours: h, Minutes: m, Seconds: s})
	if err != nil {
		// blamed on the largest unit the user filled in
		field := "seconds"
		switch {
		case hours != "":
			field = "hours"
		case minutes != "":
			field = "minutes"
		}
		return 0, &FieldError{Field: field, Err: err}
	}
	return d, nil
}

func parseComponent(field, v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(v, "-") {
		return 0, &FieldError{Field: field, Err: ErrTooLong}
	}
	if err != nil {
		return 0, &FieldError{Field: field, Err: errors.New("enter a whole number")}
	}
	if n < 0 {
		return 0, &FieldError{Field: field, Err: ErrNegative}
	}
	return n, nil
}
