package event

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHour   int
		wantMinute int
		wantErr    bool
	}{
		{name: "midnight", input: "00:00", wantHour: 0, wantMinute: 0},
		{name: "morning", input: "09:30", wantHour: 9, wantMinute: 30},
		{name: "last minute", input: "23:59", wantHour: 23, wantMinute: 59},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "not zero padded", input: "9:00", wantErr: true},
		{name: "wrong separator", input: "09.00", wantErr: true},
		{name: "letters", input: "ab:cd", wantErr: true},
		{name: "seconds", input: "09:00:00", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, err := ParseTime(tt.input)
			if tt.wantErr {
				var fe *FormatError
				if !errors.As(err, &fe) {
					t.Fatalf("ParseTime(%q) error = %v, want *FormatError", tt.input, err)
				}
				if !errors.Is(err, ErrInvalidTime) {
					t.Errorf("expected ErrInvalidTime, got %v", err)
				}
				if fe.Value != tt.input {
					t.Errorf("FormatError.Value = %q, want %q", fe.Value, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h != tt.wantHour || m != tt.wantMinute {
				t.Errorf("ParseTime(%q) = %d:%d, want %d:%d", tt.input, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestEndTime(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		duration int
		want     string
	}{
		{name: "one hour", start: "09:00", duration: 60, want: "10:00"},
		{name: "minute carry", start: "09:45", duration: 30, want: "10:15"},
		{name: "short", start: "14:00", duration: 15, want: "14:15"},
		{name: "zero duration", start: "08:20", duration: 0, want: "08:20"},
		{name: "no rollover past midnight", start: "23:30", duration: 90, want: "25:00"},
		{name: "long event", start: "22:00", duration: 180, want: "25:00"},
		{name: "ends at midnight", start: "23:00", duration: 60, want: "24:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EndTime(tt.start, tt.duration)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("EndTime(%q, %d) = %q, want %q", tt.start, tt.duration, got, tt.want)
			}
		})
	}
}

func TestEndTime_Errors(t *testing.T) {
	if _, err := EndTime("9:00", 30); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := EndTime("09:00", -5); !errors.Is(err, ErrNonPositiveDuration) {
		t.Errorf("expected ErrNonPositiveDuration, got %v", err)
	}
}

func TestEndTime_LexicographicOrder(t *testing.T) {
	// End times compare correctly as strings because both fields are padded.
	a, _ := EndTime("08:00", 65)
	b, _ := EndTime("09:00", 10)
	if !(a < b) {
		t.Errorf("expected %q < %q", a, b)
	}
}

func TestTimeToMinutes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "00:00", want: 0},
		{input: "09:00", want: 540},
		{input: "23:59", want: 1439},
		{input: "9:00", want: 0},
		{input: "", want: 0},
	}

	for _, tt := range tests {
		if got := TimeToMinutes(tt.input); got != tt.want {
			t.Errorf("TimeToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
