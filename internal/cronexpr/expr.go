package cronexpr

import (
	"errors"
	"fmt"
	"strings"
)

// Field is a position in a 6-field Quartz cron expression.
type Field int

const (
	Seconds Field = iota
	Minutes
	Hours
	DayOfMonth
	Month
	DayOfWeek

	numFields = 6
)

var fieldNames = [numFields]string{"seconds", "minutes", "hours", "dom", "month", "dow"}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldNames[f]
}

// Fields lists every field in expression order.
func Fields() []Field {
	return []Field{Seconds, Minutes, Hours, DayOfMonth, Month, DayOfWeek}
}

// ErrMalformed matches any *MalformedError via errors.Is.
var ErrMalformed = errors.New("malformed cron expression")

// MalformedError reports an expression that does not split into 6 fields.
type MalformedError struct {
	Raw    string
	Fields int
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("invalid cron expression %q: expected %d fields, got %d", e.Raw, numFields, e.Fields)
}

func (e *MalformedError) Is(target error) bool { return target == ErrMalformed }

// Expression is a parsed cron expression. Tokens are kept verbatim.
type Expression [numFields]string

// Parse splits raw on single spaces. Anything other than exactly six tokens
// is rejected; tokens themselves are not interpreted.
func Parse(raw string) (Expression, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != numFields {
		return Expression{}, &MalformedError{Raw: raw, Fields: len(parts)}
	}
	var e Expression
	copy(e[:], parts)
	return e, nil
}

func (e Expression) Field(f Field) string { return e[f] }

// String joins the fields with single spaces, so Parse(s).String() == s.
func (e Expression) String() string { return strings.Join(e[:], " ") }

// Overrides replaces selected fields. Fields without a key are left as is.
type Overrides map[Field]string

// Apply returns a copy of e with the overrides applied.
func (e Expression) Apply(o Overrides) Expression {
	for f, v := range o {
		if f < 0 || f >= numFields {
			continue
		}
		e[f] = v
	}
	return e
}

// Rewrite parses raw, applies o and formats the result.
func Rewrite(raw string, o Overrides) (string, error) {
	e, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return e.Apply(o).String(), nil
}
