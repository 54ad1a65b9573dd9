package event

import "fmt"

// ParseTime parses a zero-padded 24-hour "HH:MM" string.
// Returns a *FormatError unless hour is in [0,23] and minute in [0,59].
func ParseTime(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' || !isDigits(s[0:2]) || !isDigits(s[3:5]) {
		return 0, 0, &FormatError{Field: "time", Value: s, Err: ErrInvalidTime}
	}
	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, &FormatError{Field: "time", Value: s, Err: ErrInvalidTime}
	}
	return hour, minute, nil
}

// FormatTime formats hour and minute as "HH:MM".
// Hours above 23 are kept as is, so 25:00 is a valid result.
func FormatTime(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// EndTime returns the time durationMinutes after start.
// The hour is not wrapped at midnight: "23:30" plus 90 minutes is "25:00".
func EndTime(start string, durationMinutes int) (string, error) {
	h, m, err := ParseTime(start)
	if err != nil {
		return "", err
	}
	if durationMinutes < 0 {
		return "", &ValidationError{Field: "duration", Err: ErrNonPositiveDuration}
	}
	total := h*60 + m + durationMinutes
	return FormatTime(total/60, total%60), nil
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	h, m, err := ParseTime(t)
	if err != nil {
		return 0
	}
	return h*60 + m
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
