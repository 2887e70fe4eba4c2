package partdate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for use with errors.Is.
var (
	ErrNoDatesFound      = errors.New("partdate: no dates found")
	ErrUndecidedDate     = errors.New("partdate: undecided date")
	ErrInvalidDateFormat = errors.New("partdate: invalid date format")
)

// maxErrTextLen bounds how much of the input is echoed in error messages.
const maxErrTextLen = 50

// NoDatesFoundError is returned by FindLastDate when the text has no
// candidates.
type NoDatesFoundError struct {
	Text string // The full input
}

func (e *NoDatesFoundError) Error() string {
	s := e.Text
	if len(s) > maxErrTextLen {
		n := maxErrTextLen
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
		s = s[:n] + "..."
	}
	return fmt.Sprintf("partdate: no dates found in %q", s)
}

func (e *NoDatesFoundError) Unwrap() error { return ErrNoDatesFound }

// UndecidedDateError reports a well-formed group whose year, month and day
// cannot be told apart by magnitude.
type UndecidedDateError struct {
	Values [3]uint16 // Raw values in group order
	Count  int       // Number of meaningful entries in Values (2 or 3)
}

func undecided(vals ...uint16) *UndecidedDateError {
	e := &UndecidedDateError{Count: len(vals)}
	copy(e.Values[:], vals)
	return e
}

// Value returns the i-th raw value and whether it was present in the group.
func (e *UndecidedDateError) Value(i int) (uint16, bool) {
	if i < 0 || i >= e.Count {
		return 0, false
	}
	return e.Values[i], true
}

func (e *UndecidedDateError) Error() string {
	var b strings.Builder
	b.WriteString("partdate: unable to determine date from values:")
	for i := range e.Values {
		b.WriteByte(' ')
		if v, ok := e.Value(i); ok {
			b.WriteString(strconv.Itoa(int(v)))
		} else {
			b.WriteString("none")
		}
	}
	return b.String()
}

func (e *UndecidedDateError) Unwrap() error { return ErrUndecidedDate }

// InvalidDateFormatError reports a group with the wrong number of parts or a
// part that does not fit in 16 bits.
type InvalidDateFormatError struct {
	Group string // Parts joined by single spaces
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("partdate: invalid date format from %q", e.Group)
}

func (e *InvalidDateFormatError) Unwrap() error { return ErrInvalidDateFormat }
