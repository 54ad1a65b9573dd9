package dateutil

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := ParseDate("2025-01-15")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := date(2025, 1, 15); !got.Equal(want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("empty defaults to today", func(t *testing.T) {
		got, err := ParseDate("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		today := TruncateToDay(time.Now())
		if !got.Equal(today) {
			t.Errorf("got %v, want %v", got, today)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := ParseDate("01-15-2025")
		if !errors.Is(err, ErrInvalidDateFormat) {
			t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
		}
	})
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "2024-02-29"},
		{name: "empty", input: "", wantErr: true},
		{name: "not a leap year", input: "2023-02-29", wantErr: true},
		{name: "single digit month", input: "2024-2-09", wantErr: true},
		{name: "trailing text", input: "2024-02-09x", wantErr: true},
		{name: "month out of range", input: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("expected ErrInvalidDateFormat, got %v", err)
			}
		})
	}
}

func TestFormatKey_RoundTrip(t *testing.T) {
	d := date(2025, 3, 7)
	key := FormatKey(d)
	if key != "2025-03-07" {
		t.Fatalf("FormatKey = %q, want 2025-03-07", key)
	}
	back, err := ParseKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestNewDateRange(t *testing.T) {
	t.Run("valid date range", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "2025-01-20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(date(2025, 1, 15)) {
			t.Errorf("got start %v", dr.Start)
		}
		if !dr.End.Equal(date(2025, 1, 20)) {
			t.Errorf("got end %v", dr.End)
		}
		if got := len(dr.Days()); got != 6 {
			t.Errorf("Days() len = %d, want 6", got)
		}
	})

	t.Run("empty end defaults to start", func(t *testing.T) {
		dr, err := NewDateRange("2025-01-15", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !dr.Start.Equal(dr.End) {
			t.Errorf("expected start and end to be equal, got %v and %v", dr.Start, dr.End)
		}
	})
}

func TestNewDateRange_Errors(t *testing.T) {
	tests := []struct {
		name      string
		startDate string
		endDate   string
		wantErr   error
	}{
		{name: "invalid start date format", startDate: "01-15-2025", wantErr: ErrInvalidDateFormat},
		{name: "invalid end date format", startDate: "2025-01-15", endDate: "01-20-2025", wantErr: ErrInvalidDateFormat},
		{name: "end date before start date", startDate: "2025-01-20", endDate: "2025-01-15", wantErr: ErrEndDateBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDateRange(tt.startDate, tt.endDate)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name         string
		input        time.Time
		wantSunday   time.Time
		wantSaturday time.Time
	}{
		{name: "sunday", input: date(2025, 1, 12), wantSunday: date(2025, 1, 12), wantSaturday: date(2025, 1, 18)},
		{name: "wednesday", input: date(2025, 1, 15), wantSunday: date(2025, 1, 12), wantSaturday: date(2025, 1, 18)},
		{name: "saturday", input: date(2025, 1, 18), wantSunday: date(2025, 1, 12), wantSaturday: date(2025, 1, 18)},
		{name: "crosses month", input: date(2025, 3, 1), wantSunday: date(2025, 2, 23), wantSaturday: date(2025, 3, 1)},
		{name: "crosses year", input: date(2025, 1, 1), wantSunday: date(2024, 12, 29), wantSaturday: date(2025, 1, 4)},
		{name: "time of day dropped", input: time.Date(2025, 1, 15, 17, 45, 0, 0, time.Local), wantSunday: date(2025, 1, 12), wantSaturday: date(2025, 1, 18)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sunday, saturday := WeekRange(tt.input)
			if !sunday.Equal(tt.wantSunday) {
				t.Errorf("sunday = %v, want %v", sunday, tt.wantSunday)
			}
			if !saturday.Equal(tt.wantSaturday) {
				t.Errorf("saturday = %v, want %v", saturday, tt.wantSaturday)
			}
			if !EndOfWeek(tt.input).Equal(tt.wantSaturday) {
				t.Errorf("EndOfWeek = %v, want %v", EndOfWeek(tt.input), tt.wantSaturday)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	first, last := MonthRange(date(2024, 2, 14))
	if !first.Equal(date(2024, 2, 1)) {
		t.Errorf("first = %v", first)
	}
	if !last.Equal(date(2024, 2, 29)) {
		t.Errorf("last = %v", last)
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		n     int
		want  time.Time
	}{
		{name: "jan 31 to feb non-leap", input: date(2025, 1, 31), n: 1, want: date(2025, 2, 28)},
		{name: "jan 31 to feb leap", input: date(2024, 1, 31), n: 1, want: date(2024, 2, 29)},
		{name: "mar 31 back to feb", input: date(2025, 3, 31), n: -1, want: date(2025, 2, 28)},
		{name: "mid month", input: date(2025, 5, 15), n: 1, want: date(2025, 6, 15)},
		{name: "year rollover", input: date(2025, 12, 31), n: 1, want: date(2026, 1, 31)},
		{name: "year rollback", input: date(2025, 1, 10), n: -1, want: date(2024, 12, 10)},
		{name: "twelve months", input: date(2024, 2, 29), n: 12, want: date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddMonths(tt.input, tt.n)
			if !got.Equal(tt.want) {
				t.Errorf("AddMonths(%v, %d) = %v, want %v", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 31: "31st"}
	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestTruncateToDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123, time.Local)
	if got := TruncateToDay(input); !got.Equal(date(2025, 1, 15)) {
		t.Errorf("got %v", got)
	}
}

func TestParseRelativeDate(t *testing.T) {
	// Wednesday, 2025-01-15
	ref := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)

	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "", want: date(2025, 1, 15)},
		{input: "today", want: date(2025, 1, 15)},
		{input: "TOMORROW", want: date(2025, 1, 16)},
		{input: "yesterday", want: date(2025, 1, 14)},
		{input: "next-week", want: date(2025, 1, 22)},
		{input: "last-week", want: date(2025, 1, 8)},
		{input: "next-month", want: date(2025, 2, 15)},
		{input: "last-month", want: date(2024, 12, 15)},
		{input: "wednesday", want: date(2025, 1, 22)},
		{input: "friday", want: date(2025, 1, 17)},
		{input: "next-monday", want: date(2025, 1, 20)},
		{input: " 2024-06-01 ", want: date(2024, 6, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRelativeDate(tt.input, ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseRelativeDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRelativeDate_Errors(t *testing.T) {
	ref := time.Date(2025, 1, 15, 0, 0, 0, 0, time.Local)
	for _, input := range []string{"someday", "next-fortnight", "2025/01/20"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseRelativeDate(input, ref)
			if !errors.Is(err, ErrInvalidDateFormat) {
				t.Errorf("got error %v, want %v", err, ErrInvalidDateFormat)
			}
		})
	}
}

func TestSpan(t *testing.T) {
	start := time.Date(2025, 2, 27, 15, 30, 0, 0, time.Local)
	end := time.Date(2025, 3, 2, 8, 0, 0, 0, time.Local)
	days := Span(start, end)
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if len(days) != len(want) {
		t.Fatalf("len = %d, want %d", len(days), len(want))
	}
	for i, d := range days {
		if FormatKey(d) != want[i] || d.Hour() != 0 {
			t.Errorf("days[%d] = %v, want %s at midnight", i, d, want[i])
		}
	}

	if got := Span(end, start); len(got) != 0 {
		t.Errorf("reversed span = %d days, want 0", len(got))
	}
}
