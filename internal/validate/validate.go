package validate

import (
	"errors"
	"strconv"
	"strings"
)

type ErrField struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Errs is a list of field errors. It is returned as an error by the entity
// and serializer layers and rendered as the details of a 400 response.
type Errs []ErrField

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, ef := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(ef.Field + ": " + ef.Msg)
	}
	return b.String()
}

// Add appends a field error; nil is ignored so helpers can be chained.
func (e *Errs) Add(ef *ErrField) {
	if ef != nil {
		*e = append(*e, *ef)
	}
}

func (e *Errs) Set(field, msg string) { *e = append(*e, ErrField{Field: field, Msg: msg}) }

// Has reports whether any error was recorded for field.
func (e Errs) Has(field string) bool {
	for _, ef := range e {
		if ef.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil for an empty list so callers never get a typed nil error.
func (e Errs) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// As extracts field errors from err, if any.
func As(err error) (Errs, bool) {
	var errs Errs
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// Helpers
func Required(field, value string) *ErrField {
	if strings.TrimSpace(value) == "" {
		return &ErrField{Field: field, Msg: MsgRequired}
	}
	return nil
}

// Present is Required for optional (pointer) input fields.
func Present(field string, ok bool) *ErrField {
	if !ok {
		return &ErrField{Field: field, Msg: MsgRequired}
	}
	return nil
}

func MinInt(field string, v, min int64) *ErrField {
	if v < min {
		return &ErrField{Field: field, Msg: "Ensure this value is greater than or equal to " + strconv.FormatInt(min, 10) + "."}
	}
	return nil
}

func MaxInt(field string, v, max int64) *ErrField {
	if v > max {
		return &ErrField{Field: field, Msg: "Ensure this value is less than or equal to " + strconv.FormatInt(max, 10) + "."}
	}
	return nil
}

const MsgRequired = "This field is required."
