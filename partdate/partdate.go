// Package partdate finds numeric date-like substrings in free-form text and
// converts them into partially-known calendar dates.
//
// A candidate is a run of two or three digit groups joined by the separators
// '-', '/', '_', ' ' or '.', for example "2023-10-05", "10/2023" or
// "2021-11_21". Year, month and day are assigned from magnitude alone: a value
// above 12 cannot be a month, so it pins the year and the remaining values
// follow a fixed month-then-day convention. When the magnitudes do not decide,
// the candidate is reported as undecided rather than guessed.
//
// No calendar validation is performed: "2023-02-31" yields year 2023,
// month 2, day 31.
//
// Two API layers are provided:
//
//   - FindDates returns []Result with byte offsets, one per candidate,
//     successes and failures interleaved in order of appearance.
//   - FindLastDate returns only the last candidate's date.
//
// All functions are safe for concurrent use by multiple goroutines.
package partdate

import (
	"encoding/json"
	"fmt"
)

// Components is a bitmask indicating which date fields are known.
type Components uint8

const (
	HasYear Components = 1 << iota
	HasMonth
	HasDay
)

// String returns a debug representation of the components bitmask.
func (c Components) String() string {
	var parts []byte
	if c&HasYear != 0 {
		parts = append(parts, 'Y')
	}
	if c&HasMonth != 0 {
		parts = append(parts, 'M')
	}
	if c&HasDay != 0 {
		parts = append(parts, 'D')
	}
	if len(parts) == 0 {
		return "none"
	}
	return string(parts)
}

// Date is a calendar date whose year, month and day are each either known or
// unknown. The zero value has no known fields.
//
// Date is an immutable value: the With methods return a modified copy.
type Date struct {
	year  uint16
	month uint16
	day   uint16
	known Components
}

// NewDate returns a date with all three fields known.
func NewDate(year, month, day uint16) Date {
	return Date{year: year, month: month, day: day, known: HasYear | HasMonth | HasDay}
}

// WithYear returns a copy of d with the year set.
func (d Date) WithYear(year uint16) Date {
	d.year = year
	d.known |= HasYear
	return d
}

// WithMonth returns a copy of d with the month set.
func (d Date) WithMonth(month uint16) Date {
	d.month = month
	d.known |= HasMonth
	return d
}

// WithDay returns a copy of d with the day set.
func (d Date) WithDay(day uint16) Date {
	d.day = day
	d.known |= HasDay
	return d
}

// Year returns the year and whether it is known.
func (d Date) Year() (uint16, bool) { return d.year, d.known&HasYear != 0 }

// Month returns the month and whether it is known.
func (d Date) Month() (uint16, bool) { return d.month, d.known&HasMonth != 0 }

// Day returns the day and whether it is known.
func (d Date) Day() (uint16, bool) { return d.day, d.known&HasDay != 0 }

// Known reports which fields are set.
func (d Date) Known() Components { return d.known }

// String renders the date as YYYY-MM-DD with '?' for unknown fields,
// e.g. "2023-10-05", "2023-10-??", "????-10-05".
func (d Date) String() string {
	return formatField(d.Year, 4) + "-" + formatField(d.Month, 2) + "-" + formatField(d.Day, 2)
}

func formatField(get func() (uint16, bool), width int) string {
	v, ok := get()
	if !ok {
		return "????"[:width]
	}
	return fmt.Sprintf("%0*d", width, v)
}

// dateFields is the wire shape shared by the JSON and YAML encodings.
type dateFields struct {
	Year  *uint16 `json:"year"  yaml:"year"`
	Month *uint16 `json:"month" yaml:"month"`
	Day   *uint16 `json:"day"   yaml:"day"`
}

func (d Date) fields() dateFields {
	var f dateFields
	if v, ok := d.Year(); ok {
		f.Year = &v
	}
	if v, ok := d.Month(); ok {
		f.Month = &v
	}
	if v, ok := d.Day(); ok {
		f.Day = &v
	}
	return f
}

func dateFromFields(f dateFields) Date {
	var d Date
	if f.Year != nil {
		d = d.WithYear(*f.Year)
	}
	if f.Month != nil {
		d = d.WithMonth(*f.Month)
	}
	if f.Day != nil {
		d = d.WithDay(*f.Day)
	}
	return d
}

// MarshalJSON encodes the date as {"year":2023,"month":10,"day":null}.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.fields())
}

// UnmarshalJSON decodes the object produced by MarshalJSON.
// Missing and null fields are unknown.
func (d *Date) UnmarshalJSON(data []byte) error {
	var f dateFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("partdate: decode date: %w", err)
	}
	*d = dateFromFields(f)
	return nil
}

// MarshalYAML encodes the date as a mapping with year, month and day keys.
func (d Date) MarshalYAML() (any, error) {
	return d.fields(), nil
}

// Result is one candidate found in the text.
// When Err is nil, Date holds the disambiguated date.
type Result struct {
	Text  string // The matched substring
	Start int    // Byte offset in the original string (inclusive)
	End   int    // Byte offset in the original string (exclusive)
	Date  Date   // Valid only when Err == nil
	Err   error  // *UndecidedDateError or *InvalidDateFormatError
}

// String returns a debug representation, e.g. 2023-10-05("2023-10-05")[0:10].
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("error(%q)[%d:%d]: %v", r.Text, r.Start, r.End, r.Err)
	}
	return fmt.Sprintf("%s(%q)[%d:%d]", r.Date, r.Text, r.Start, r.End)
}

// FindDates returns one Result per candidate group in s, in order of
// appearance. Failed candidates are kept in place with Err set.
// Returns nil when s contains no candidates.
func FindDates(s string) []Result {
	if s == "" {
		return nil
	}
	groups := segment(s)
	if len(groups) == 0 {
		return nil
	}
	results := make([]Result, len(groups))
	for i, g := range groups {
		date, err := g.Date()
		results[i] = Result{
			Text:  s[g.Start:g.End],
			Start: g.Start,
			End:   g.End,
			Date:  date,
			Err:   err,
		}
	}
	return results
}

// FindLastDate returns the date of the last candidate in s.
// If that candidate could not be disambiguated its error is returned;
// if s has no candidates the error is a *NoDatesFoundError.
func FindLastDate(s string) (Date, error) {
	results := FindDates(s)
	if len(results) == 0 {
		return Date{}, &NoDatesFoundError{Text: s}
	}
	last := results[len(results)-1]
	if last.Err != nil {
		return Date{}, last.Err
	}
	return last.Date, nil
}
