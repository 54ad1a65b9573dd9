package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/tui/view"
)

// Defaults for a new event.
const (
	defaultEventTime     = "09:00"
	defaultEventDuration = 60
)

// formField indexes the text inputs of the event form. The category
// selector comes after the last input.
type formField int

const (
	fieldTitle formField = iota
	fieldDate
	fieldTime
	fieldDuration
	fieldDescription
	fieldCategory
)

const textFieldCount = int(fieldCategory)

var formLabels = [textFieldCount]string{"Title", "Date", "Time", "Duration (min)", "Description"}

// eventForm is the create/edit form state.
type eventForm struct {
	inputs   [textFieldCount]textinput.Model
	category int
	focus    formField
	original *event.Event // nil when creating
	err      string
}

func newEventForm(styles *Styles) eventForm {
	var f eventForm
	placeholders := [textFieldCount]string{"Event title", "YYYY-MM-DD or tomorrow", "HH:MM", "60", "Optional notes"}
	limits := [textFieldCount]int{256, 32, 5, 5, 512}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 40
		ti.PlaceholderStyle = styles.ModalPlaceholderStyle
		ti.TextStyle = styles.ModalInputTextStyle
		ti.PromptStyle = styles.ModalInputTextStyle
		ti.Cursor.Style = styles.ModalInputCursorStyle
		ti.Cursor.TextStyle = styles.ModalInputTextStyle
		f.inputs[i] = ti
	}
	return f
}

// openNew prepares the form for a new event on date.
func (f eventForm) openNew(date time.Time) eventForm {
	f.original = nil
	f.fill(&event.Event{
		Date:     dateutil.FormatKey(date),
		Time:     defaultEventTime,
		Duration: defaultEventDuration,
		Category: event.CategoryWork,
	})
	return f
}

// openEdit prepares the form for editing e. The ID is kept on save.
func (f eventForm) openEdit(e *event.Event) eventForm {
	f.original = e
	f.fill(e)
	return f
}

func (f *eventForm) fill(e *event.Event) {
	f.inputs[fieldTitle].SetValue(e.Title)
	f.inputs[fieldDate].SetValue(e.Date)
	f.inputs[fieldTime].SetValue(e.Time)
	f.inputs[fieldDuration].SetValue(strconv.Itoa(e.Duration))
	f.inputs[fieldDescription].SetValue(e.Description)
	f.category = max(e.Category.Index(), 0)
	f.err = ""
	f.setFocus(fieldTitle)
}

func (f *eventForm) setFocus(field formField) {
	f.focus = field
	for i := range f.inputs {
		if formField(i) == field {
			f.inputs[i].Focus()
			f.inputs[i].CursorEnd()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f eventForm) next() eventForm {
	f.setFocus((f.focus + 1) % (fieldCategory + 1))
	return f
}

func (f eventForm) prev() eventForm {
	f.setFocus((f.focus + fieldCategory) % (fieldCategory + 1))
	return f
}

func (f eventForm) isNew() bool {
	return f.original == nil
}

// update routes a key to the focused field.
func (f eventForm) update(msg tea.KeyMsg) (eventForm, tea.Cmd) {
	if f.focus == fieldCategory {
		switch msg.String() {
		case "left", "h":
			f.category = (f.category + len(event.Categories) - 1) % len(event.Categories)
		case "right", "l":
			f.category = (f.category + 1) % len(event.Categories)
		}
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// build turns the form into a validated event. Relative dates such as
// "tomorrow" are resolved against now.
func (f eventForm) build(now time.Time) (*event.Event, error) {
	e := &event.Event{}
	if f.original != nil {
		e = f.original.Clone()
	}
	e.Title = strings.TrimSpace(f.inputs[fieldTitle].Value())
	e.Time = strings.TrimSpace(f.inputs[fieldTime].Value())
	e.Description = strings.TrimSpace(f.inputs[fieldDescription].Value())
	e.Category = event.Categories[f.category]

	e.Date = strings.TrimSpace(f.inputs[fieldDate].Value())
	if e.Date != "" {
		d, err := dateutil.ParseRelativeDate(e.Date, now)
		if err != nil {
			return nil, &event.FormatError{Field: "date", Value: e.Date, Err: event.ErrInvalidDate}
		}
		e.Date = dateutil.FormatKey(d)
	}

	durText := strings.TrimSpace(f.inputs[fieldDuration].Value())
	if durText != "" {
		d, err := strconv.Atoi(durText)
		if err != nil {
			return nil, &event.ValidationError{Field: "duration", Err: event.ErrNonPositiveDuration}
		}
		e.Duration = d
	} else {
		e.Duration = 0
	}

	if err := event.Validate(e); err != nil {
		return nil, err
	}
	return e, nil
}

// formErrorMessage maps validation errors to the text shown in the form.
func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, event.ErrEmptyTitle):
		return "Title is required"
	case errors.Is(err, event.ErrMissingDate):
		return "Date is required"
	case errors.Is(err, event.ErrInvalidDate):
		return "Date must be YYYY-MM-DD"
	case errors.Is(err, event.ErrMissingTime):
		return "Time is required"
	case errors.Is(err, event.ErrInvalidTime):
		return "Time must be HH:MM"
	case errors.Is(err, event.ErrNonPositiveDuration):
		return "Duration must be a positive number of minutes"
	default:
		return err.Error()
	}
}

// summary returns "Wed Jan 15 · 09:00 - 10:00 (1h)" when the current values
// parse, or an empty string.
func (f eventForm) summary(now time.Time) string {
	e, err := f.build(now)
	if err != nil {
		return ""
	}
	day, err := dateutil.ParseKey(e.Date)
	if err != nil {
		return ""
	}
	return day.Format("Mon Jan 2") + " · " + view.TimeRange(e)
}

func (f eventForm) viewModel(now time.Time) view.EventFormModel {
	fields := make([]view.FormField, 0, textFieldCount)
	for i, in := range f.inputs {
		fields = append(fields, view.FormField{
			Label:   formLabels[i],
			Value:   in.View(),
			Focused: f.focus == formField(i),
		})
	}
	categories := make([]string, 0, len(event.Categories))
	for _, c := range event.Categories {
		categories = append(categories, c.Label())
	}
	return view.EventFormModel{
		Summary:         f.summary(now),
		Fields:          fields,
		Categories:      categories,
		ActiveCategory:  f.category,
		CategoryFocused: f.focus == fieldCategory,
		Error:           f.err,
	}
}
