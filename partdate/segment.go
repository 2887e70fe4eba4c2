package partdate

import (
	"strings"
	"unicode/utf8"
)

// minGroupParts is the smallest number of numeric parts that can carry a date.
const minGroupParts = 2

// Group is a candidate date window: digit runs joined by separators.
type Group struct {
	Parts []string // ASCII digits of each part, leading zeros included
	Start int      // Byte offset of the first digit (inclusive)
	End   int      // Byte offset after the last digit (exclusive)
}

// String joins the parts with single spaces, e.g. "2023 10 05".
func (g Group) String() string {
	return strings.Join(g.Parts, " ")
}

// Segment returns the candidate groups in s in order of appearance.
// A single-part group is dropped when a terminator follows it but kept when
// the input ends while it is open; Group.Date rejects it, like any group
// longer than three.
func Segment(s string) []Group {
	if s == "" {
		return nil
	}
	return segment(s)
}

func isSeparator(r rune) bool {
	switch r {
	case '-', '/', '_', ' ', '.':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// scanner holds the state of one segmentation pass.
// The group scratch slice is reused; finalize copies it out.
type scanner struct {
	part      []byte // digits of the in-progress part
	partStart int
	partEnd   int
	group     []string
	start     int
	end       int
	out       []Group
}

func (sc *scanner) addDigit(r rune, i, size int) {
	if len(sc.part) == 0 {
		sc.partStart = i
	}
	sc.part = append(sc.part, byte(r))
	sc.partEnd = i + size
}

// closePart moves the in-progress part, if any, into the group.
func (sc *scanner) closePart() {
	if len(sc.part) == 0 {
		return
	}
	if len(sc.group) == 0 {
		sc.start = sc.partStart
	}
	sc.group = append(sc.group, string(sc.part))
	sc.end = sc.partEnd
	sc.part = sc.part[:0]
}

// finalize commits the group to the output and clears the scratch state.
func (sc *scanner) finalize() {
	parts := make([]string, len(sc.group))
	copy(parts, sc.group)
	sc.out = append(sc.out, Group{Parts: parts, Start: sc.start, End: sc.end})
	sc.reset()
}

func (sc *scanner) reset() {
	sc.group = sc.group[:0]
	sc.part = sc.part[:0]
}

// segment performs a single forward pass over s. The caller guarantees s is
// non-empty.
//
// Rules per rune:
//   - ASCII digit: extends the current part
//   - separator: closes the current part, if any
//   - anything else: a group of two or more parts is committed, a
//     one-part group is dropped together with the pending part, and with
//     no group open the rune is skipped
//
// A pending part survives a terminator that finds no open group, so "a10b"
// contributes the part "10" to whatever group follows. At end of input an
// open group takes the pending part and is committed whatever its length; a
// pending part with no open group is dropped.
func segment(s string) []Group {
	sc := &scanner{group: make([]string, 0, 3)}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case isDigit(r):
			sc.addDigit(r, i, size)
		case isSeparator(r):
			sc.closePart()
		case len(sc.group) >= minGroupParts:
			sc.finalize()
		case len(sc.group) > 0:
			sc.reset()
		}
		i += size
	}

	if len(sc.group) > 0 {
		sc.closePart()
		sc.finalize()
	}
	return sc.out
}
