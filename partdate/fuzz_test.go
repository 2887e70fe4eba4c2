package partdate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func FuzzFindDates(f *testing.F) {
	seeds := []string{
		"2023-10-05",
		"2023-10-05 some other/random text 2021-11_21",
		"100 some random text 2023-10-05",
		"10/25/2023",
		"12.10.05",
		"03/2024",
		"1-2-3-4-5",
		"70000-01-01",
		"0-0",
		"2023-10-05T12:00",
		"",
		"abc xyz",
		" -/_. ",
		"\xff\xfe 2023-10-05",
		"\x00 2023\x0010",
		"\xC3",
		"2023-١٠-05",
		"the year 2023 ",
		"a10b 2023-05 x",
	}

	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		results := FindDates(s)

		if len(results) > 0 && !strings.ContainsAny(s, "0123456789") {
			t.Errorf("got %d results for input without ASCII digits", len(results))
		}

		for _, r := range results {
			// Offset invariant: matched text must equal the slice.
			if r.Start < 0 || r.End > len(s) || r.Start >= r.End {
				t.Errorf("invalid offsets: Start=%d End=%d len=%d", r.Start, r.End, len(s))
				continue
			}
			if s[r.Start:r.End] != r.Text {
				t.Errorf("offset invariant: s[%d:%d]=%q != Text=%q", r.Start, r.End, s[r.Start:r.End], r.Text)
			}

			if r.Err != nil {
				if !errors.Is(r.Err, ErrUndecidedDate) && !errors.Is(r.Err, ErrInvalidDateFormat) {
					t.Errorf("unexpected error kind: %v", r.Err)
				}
				if r.Date != (Date{}) {
					t.Errorf("failed result carries a date: %s", r.Date)
				}
				continue
			}

			// A successful date always knows year and month.
			if r.Date.Known()&(HasYear|HasMonth) != HasYear|HasMonth {
				t.Errorf("date %s missing year or month: %s", r.Date, r.Date.Known())
			}
		}

		// FindLastDate must agree with the last entry.
		d, err := FindLastDate(s)
		switch {
		case len(results) == 0:
			if !errors.Is(err, ErrNoDatesFound) {
				t.Errorf("FindLastDate: want ErrNoDatesFound, got %v", err)
			}
		case results[len(results)-1].Err != nil:
			if err == nil {
				t.Errorf("FindLastDate: want error, got %s", d)
			}
		default:
			if err != nil || d != results[len(results)-1].Date {
				t.Errorf("FindLastDate = %s, %v; want %s", d, err, results[len(results)-1].Date)
			}
		}
	})
}

// TestLinearTime verifies scanning stays fast on adversarial input.
func TestLinearTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "repeated dates", input: strings.Repeat("2023-10-05 x ", 5000)},
		{name: "one endless group", input: strings.Repeat("12.", 20000)},
		{name: "only separators", input: strings.Repeat(" -/_.", 20000)},
		{name: "long digit run", input: strings.Repeat("1234567890", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			_ = FindDates(tt.input)
			elapsed := time.Since(start)

			const maxDuration = 2 * time.Second
			if elapsed > maxDuration {
				t.Errorf("took %v, exceeds %v limit", elapsed, maxDuration)
			}
		})
	}
}

// TestConcurrentSafety verifies the package is safe for concurrent use.
func TestConcurrentSafety(t *testing.T) {
	inputs := []string{
		"2023-10-05",
		"12.10.05",
		"10/2023",
		"1-2-3-4",
		"nothing",
	}

	const numGoroutines = 100
	done := make(chan bool, numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("goroutine %d panicked: %v", id, r)
				}
				done <- true
			}()

			for j := range 100 {
				input := inputs[j%len(inputs)]
				_ = FindDates(input)
				_, _ = FindLastDate(input)
			}
		}(i)
	}

	for range numGoroutines {
		<-done
	}
}

// TestMalformedUTF8 verifies handling of invalid UTF-8 sequences.
func TestMalformedUTF8(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"\xFF\xFE 2023-10-05", 1},
		{"2023-10 \xC0\x80 2023-11", 2},
		{"2023-10-05 \xFF", 1},
		{"\xC3", 0},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("FindDates(%q) panicked: %v", tt.in, r)
				}
			}()
			if got := len(FindDates(tt.in)); got != tt.want {
				t.Errorf("FindDates(%q): got %d results, want %d", tt.in, got, tt.want)
			}
		})
	}
}

// TestNullByteInjection verifies that NUL terminates a group like any other
// non-separator.
func TestNullByteInjection(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"\x002023-10-05", 1},
		{"2023-10-05\x00", 1},
		{"2023\x0010\x0005", 0},
	}

	for _, tt := range tests {
		t.Run("", func(t *testing.T) {
			if got := len(FindDates(tt.in)); got != tt.want {
				t.Errorf("FindDates(%q): got %d results, want %d", tt.in, got, tt.want)
			}
		})
	}
}
