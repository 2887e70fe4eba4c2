package partdate

import "strconv"

// maxMonth is the largest value that can be read as a month. Anything above
// it must be a year.
const maxMonth = 12

// partValue converts a digit run to a number. Only a '0' at index 0 is
// dropped: "05" is 5, "0005" parses "005" (also 5), and "0" leaves nothing
// to parse and fails.
func partValue(p string) (uint16, error) {
	if len(p) > 0 && p[0] == '0' {
		p = p[1:]
	}
	v, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// values converts every part of g, failing with the group's rendering.
func (g Group) values() ([]uint16, error) {
	vals := make([]uint16, len(g.Parts))
	for i, p := range g.Parts {
		v, err := partValue(p)
		if err != nil {
			return nil, &InvalidDateFormatError{Group: g.String()}
		}
		vals[i] = v
	}
	return vals, nil
}

// Date assigns year, month and day to the parts of g by magnitude.
//
// Two parts (no day):
//   - first > 12: year, month
//   - second > 12: month, year
//   - otherwise undecided
//
// Three parts, first match wins:
//   - first > 12: year, month, day
//   - second > 12: month, day, year
//   - all equal: year, month, day
//   - otherwise undecided
//
// Any other part count is an invalid format.
func (g Group) Date() (Date, error) {
	if n := len(g.Parts); n != 2 && n != 3 {
		return Date{}, &InvalidDateFormatError{Group: g.String()}
	}
	v, err := g.values()
	if err != nil {
		return Date{}, err
	}

	if len(v) == 2 {
		switch {
		case v[0] > maxMonth:
			return Date{}.WithYear(v[0]).WithMonth(v[1]), nil
		case v[1] > maxMonth:
			return Date{}.WithMonth(v[0]).WithYear(v[1]), nil
		default:
			return Date{}, undecided(v[0], v[1])
		}
	}

	switch {
	case v[0] > maxMonth:
		return NewDate(v[0], v[1], v[2]), nil
	case v[1] > maxMonth:
		return NewDate(v[2], v[0], v[1]), nil
	case v[0] == v[1] && v[1] == v[2]:
		return NewDate(v[0], v[1], v[2]), nil
	default:
		return Date{}, undecided(v[0], v[1], v[2])
	}
}
