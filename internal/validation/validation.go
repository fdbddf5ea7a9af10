package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrValidation = errors.New("validation failed")

// FieldErrors maps a form field (json name) to a human readable message.
type FieldErrors map[string]string

// Error carries every problem found in a submission: parent form fields
// and, for master-detail forms, per-row field errors keyed by row index.
type Error struct {
	Fields FieldErrors         `json:"fields,omitempty"`
	Rows   map[int]FieldErrors `json:"rows,omitempty"`
}

func (e *Error) Error() string {
	var parts []string
	for _, f := range sortedKeys(e.Fields) {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	rows := make([]int, 0, len(e.Rows))
	for i := range e.Rows {
		rows = append(rows, i)
	}
	sort.Ints(rows)
	for _, i := range rows {
		for _, f := range sortedKeys(e.Rows[i]) {
			parts = append(parts, fmt.Sprintf("row %d %s: %s", i, f, e.Rows[i][f]))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

func (e *Error) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = FieldErrors{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

func (e *Error) AddRow(row int, field, msg string) {
	if e.Rows == nil {
		e.Rows = map[int]FieldErrors{}
	}
	if e.Rows[row] == nil {
		e.Rows[row] = FieldErrors{}
	}
	if _, exists := e.Rows[row][field]; !exists {
		e.Rows[row][field] = msg
	}
}

// MergeRow copies other's field errors into the given row.
func (e *Error) MergeRow(row int, other *Error) {
	if other == nil {
		return
	}
	for f, msg := range other.Fields {
		e.AddRow(row, f, msg)
	}
}

func (e *Error) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.Rows) == 0)
}

// OrNil returns nil for an empty Error so callers can `return verr.OrNil()`.
func (e *Error) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func sortedKeys(m FieldErrors) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const (
	MsgRequired      = "This field is required."
	MsgInvalidDate   = "Enter a valid date."
	MsgInvalidInt    = "Enter a whole number."
	MsgInvalidNumber = "Enter a number."
	MsgInvalidChoice = "Select a valid choice."
)

var usernameRegex = regexp.MustCompile(`^[\w.@+-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s by its `validate` tags. It returns nil when s is valid.
func Struct(s any) *Error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// invalid input to the validator itself, a programming error
		panic(fmt.Sprintf("validate %T: %s", s, err))
	}

	verr := &Error{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}
	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return "Enter a valid email address."
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "gt":
		return fmt.Sprintf("Ensure this value is greater than %s.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "oneof":
		return MsgInvalidChoice
	case "eqfield":
		return "The two password fields didn't match."
	case "datetime":
		return MsgInvalidDate
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Invalid value."
	}
}
