package partdate

import (
	"cmp"
	"slices"
)

// compareField orders one optional field: unknown sorts before known, two
// unknowns are equal.
func compareField(a uint16, aok bool, b uint16, bok bool) int {
	switch {
	case !aok && bok:
		return -1
	case aok && !bok:
		return 1
	case !aok && !bok:
		return 0
	}
	return cmp.Compare(a, b)
}

// Compare orders a and b by year, then month, then day. At each position an
// unknown field sorts before a known one. It returns -1, 0 or +1.
//
// The ordering is total and deterministic but not calendrical: a date with
// an unknown year is not "before year 1" in any real sense.
func Compare(a, b Date) int {
	if c := compareField(a.year, a.known&HasYear != 0, b.year, b.known&HasYear != 0); c != 0 {
		return c
	}
	if c := compareField(a.month, a.known&HasMonth != 0, b.month, b.known&HasMonth != 0); c != 0 {
		return c
	}
	return compareField(a.day, a.known&HasDay != 0, b.day, b.known&HasDay != 0)
}

// Before reports whether d sorts before other.
func (d Date) Before(other Date) bool { return Compare(d, other) < 0 }

// After reports whether d sorts after other.
func (d Date) After(other Date) bool { return Compare(d, other) > 0 }

// Equal reports whether d and other have the same known fields with the same
// values.
func (d Date) Equal(other Date) bool { return Compare(d, other) == 0 }

// Sort orders dates in place using Compare. Equal dates keep their order.
func Sort(dates []Date) {
	slices.SortStableFunc(dates, Compare)
}
