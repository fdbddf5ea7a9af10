// Package forms decodes submitted forms. Values are kept as the raw strings
// the user typed so a rejected form can be sent back unchanged.
package forms

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/schema"
)

const DateLayout = "2006-01-02"

var ErrUnsupportedContentType = errors.New("unsupported content type")

// decoder reads url-encoded values into the json names of a form struct.
// Field keeps its raw text, bool fields take checkbox values.
var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.SetAliasTag("json")
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(false, func(s string) reflect.Value {
		return reflect.ValueOf(Field(s).Bool())
	})
	return d
}

// Field is a raw form value. In JSON it may be a string, a number, a bool or null.
type Field string

func (f *Field) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = Field(s)
	case bytes.Equal(b, []byte("true")), bytes.Equal(b, []byte("false")):
		*f = Field(b)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("form field: %w", err)
		}
		*f = Field(n.String())
	}
	return nil
}

func (f Field) String() string {
	return strings.TrimSpace(string(f))
}

func (f Field) Blank() bool {
	return f.String() == ""
}

// Int parses the field, ok is false for blank or malformed input.
func (f Field) Int() (int, bool) {
	n, err := strconv.Atoi(f.String())
	return n, err == nil
}

// Float parses the field, ok is false for blank, malformed, NaN or infinite input.
func (f Field) Float() (float64, bool) {
	n, err := strconv.ParseFloat(f.String(), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// Date parses an ISO date (YYYY-MM-DD).
func (f Field) Date() (time.Time, bool) {
	t, err := time.Parse(DateLayout, f.String())
	return t, err == nil
}

// Bool reads checkbox style values.
func (f Field) Bool() bool {
	switch strings.ToLower(f.String()) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// IsJSON reports whether the request body is JSON.
func IsJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}

// Decode fills dst (a pointer to a struct) from a JSON or url-encoded body.
// For url-encoded bodies fields are matched by their json tag.
func Decode(r *http.Request, dst any) error {
	if IsJSON(r) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		return nil
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
	default:
		return ErrUnsupportedContentType
	}

	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return DecodeValues(r.PostForm, dst, "")
}

// DecodeValues fills dst from the values whose keys start with prefix,
// the prefix stripped. A formset row is read with prefix "entries-N-".
func DecodeValues(values url.Values, dst any, prefix string) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode values: want pointer to struct, got %T", dst)
	}

	src := values
	if prefix != "" {
		src = url.Values{}
		for key, vals := range values {
			if name, ok := strings.CutPrefix(key, prefix); ok {
				src[name] = vals
			}
		}
	}
	if err := decoder.Decode(dst, src); err != nil {
		return fmt.Errorf("decode values: %w", err)
	}
	return nil
}

// TrimSpace trims every Field and string of the struct dst points to.
func TrimSpace(dst any) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		if fv.Kind() == reflect.String && fv.CanSet() {
			fv.SetString(strings.TrimSpace(fv.String()))
		}
	}
}
