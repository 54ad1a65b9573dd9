// Package event defines the core domain types for rocinante.
package event

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrNonPositiveDuration = errors.New("duration must be positive")
	ErrMissingDate         = errors.New("date is required")
	ErrMissingTime         = errors.New("time is required")
	ErrInvalidCategory     = errors.New("category must be one of work, personal, meeting, deadline, reminder")
)

// Format errors.
var (
	ErrInvalidTime = errors.New("time must be in HH:MM format")
	ErrInvalidDate = dateutil.ErrInvalidDateFormat
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrDuplicateID   = errors.New("event id already exists")
)

// FormatError reports a malformed date or time value.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ValidationError reports an event that cannot enter a collection.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Category classifies an event.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryPersonal Category = "personal"
	CategoryMeeting  Category = "meeting"
	CategoryDeadline Category = "deadline"
	CategoryReminder Category = "reminder"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryPersonal,
	CategoryMeeting,
	CategoryDeadline,
	CategoryReminder,
}

// ParseCategory parses a category name, ignoring case and surrounding space.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Valid returns true if the category is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Label returns the capitalized category name.
func (c Category) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Index returns the display position of the category, or -1 if unknown.
func (c Category) Index() int {
	return slices.Index(Categories, c)
}

// Event represents one scheduled item.
type Event struct {
	ID          string   `json:"id" toml:"id" yaml:"id"`
	Title       string   `json:"title" toml:"title" yaml:"title"`
	Date        string   `json:"date" toml:"date" yaml:"date"`             // "YYYY-MM-DD"
	Time        string   `json:"time" toml:"time" yaml:"time"`             // "HH:MM"
	Duration    int      `json:"duration" toml:"duration" yaml:"duration"` // minutes
	Category    Category `json:"category" toml:"category" yaml:"category"`
	Description string   `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Color       string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Location    string   `json:"location,omitempty" toml:"location,omitempty" yaml:"location,omitempty"`
	Attendees   []string `json:"attendees,omitempty" toml:"attendees,omitempty" yaml:"attendees,omitempty"`
}

// New creates a new Event with validation.
// date can be empty (defaults to today) or in YYYY-MM-DD format.
// The ID is left empty; repositories assign one on create.
func New(title, category, date, start string, duration int) (*Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}

	cat, err := ParseCategory(category)
	if err != nil {
		return nil, &ValidationError{Field: "category", Err: err}
	}

	d, err := dateutil.ParseDate(date)
	if err != nil {
		return nil, &FormatError{Field: "date", Value: date, Err: ErrInvalidDate}
	}

	e := &Event{
		Title:    strings.TrimSpace(title),
		Date:     dateutil.FormatKey(d),
		Time:     start,
		Duration: duration,
		Category: cat,
	}
	if err := Validate(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the invariants an event must satisfy before it enters a
// collection. The first violation is returned.
func Validate(e *Event) error {
	if e == nil {
		return &ValidationError{Field: "event", Err: errors.New("event is nil")}
	}
	if strings.TrimSpace(e.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	if e.Date == "" {
		return &ValidationError{Field: "date", Err: ErrMissingDate}
	}
	if _, err := dateutil.ParseKey(e.Date); err != nil {
		return &FormatError{Field: "date", Value: e.Date, Err: ErrInvalidDate}
	}
	if e.Time == "" {
		return &ValidationError{Field: "time", Err: ErrMissingTime}
	}
	if _, _, err := ParseTime(e.Time); err != nil {
		return err
	}
	if e.Duration <= 0 {
		return &ValidationError{Field: "duration", Err: ErrNonPositiveDuration}
	}
	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Err: ErrInvalidCategory}
	}
	return nil
}

// End returns the end time of the event in "HH:MM" format, without wrapping
// past midnight.
func (e *Event) End() (string, error) {
	return EndTime(e.Time, e.Duration)
}

// Hour returns the hour component of the start time, or -1 if malformed.
func (e *Event) Hour() int {
	h, _, err := ParseTime(e.Time)
	if err != nil {
		return -1
	}
	return h
}

// Day returns the event date at midnight in loc.
func (e *Event) Day(loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(dateutil.KeyLayout, e.Date, loc)
	if err != nil {
		return time.Time{}, &FormatError{Field: "date", Value: e.Date, Err: ErrInvalidDate}
	}
	return d, nil
}

// StartsAt combines the date and time into an instant in loc.
func (e *Event) StartsAt(loc *time.Location) (time.Time, error) {
	d, err := e.Day(loc)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseTime(e.Time)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, loc), nil
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	if e.Attendees != nil {
		c.Attendees = slices.Clone(e.Attendees)
	}
	return &c
}

// DisplayColor returns the color override, or the empty string when the
// category color should be used.
func (e *Event) DisplayColor() string {
	return strings.TrimSpace(e.Color)
}
