package eventfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

const productID = "-//rocinante//calendar//EN"

// Default length of a timed VEVENT without DTEND.
const defaultICSDuration = 60

var (
	errRecurring    = errors.New("recurring events are not supported")
	errMissingStart = errors.New("missing DTSTART")
)

// decodeICS maps every VEVENT to an event in the local time zone. All-day
// events start at 00:00 and last whole days.
func decodeICS(data []byte) ([]record, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	vevents := cal.Events()
	records := make([]record, len(vevents))
	for i, ve := range vevents {
		e, err := fromVEvent(ve)
		if err != nil {
			records[i] = record{id: propertyValue(ve, ical.ComponentPropertyUniqueId), err: err}
			continue
		}
		records[i] = record{event: e}
	}
	return records, nil
}

func fromVEvent(ve *ical.VEvent) (*event.Event, error) {
	if ve.GetProperty(ical.ComponentPropertyRrule) != nil {
		return nil, errRecurring
	}

	startProp := ve.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil {
		return nil, errMissingStart
	}
	start, allDay, err := parseICSTime(startProp)
	if err != nil {
		return nil, fmt.Errorf("parsing DTSTART: %w", err)
	}

	duration := defaultICSDuration
	if allDay {
		duration = 24 * 60
	}
	if endProp := ve.GetProperty(ical.ComponentPropertyDtEnd); endProp != nil {
		end, _, err := parseICSTime(endProp)
		if err != nil {
			return nil, fmt.Errorf("parsing DTEND: %w", err)
		}
		duration = int(end.Sub(start).Minutes())
	}

	e := &event.Event{
		ID:          propertyValue(ve, ical.ComponentPropertyUniqueId),
		Title:       unescapeText(propertyValue(ve, ical.ComponentPropertySummary)),
		Date:        dateutil.FormatKey(start),
		Time:        event.FormatTime(start.Hour(), start.Minute()),
		Duration:    duration,
		Category:    categoryOf(propertyValue(ve, ical.ComponentPropertyCategories)),
		Description: unescapeText(propertyValue(ve, ical.ComponentPropertyDescription)),
		Location:    unescapeText(propertyValue(ve, ical.ComponentPropertyLocation)),
		Color:       propertyValue(ve, ical.ComponentProperty("COLOR")),
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyAttendee) {
		if a := attendeeAddress(p.Value); a != "" {
			e.Attendees = append(e.Attendees, a)
		}
	}
	return e, nil
}

func propertyValue(ve *ical.VEvent, name ical.ComponentProperty) string {
	if p := ve.GetProperty(name); p != nil {
		return strings.TrimSpace(p.Value)
	}
	return ""
}

// parseICSTime parses a DATE or DATE-TIME property value. UTC and TZID
// values are converted to the local zone; floating values are local.
func parseICSTime(p *ical.IANAProperty) (t time.Time, allDay bool, err error) {
	v := strings.TrimSpace(p.Value)
	if v == "" {
		return time.Time{}, false, errors.New("empty time value")
	}

	loc := time.Local
	if tz, ok := p.ICalParameters["TZID"]; ok && len(tz) > 0 {
		if l, err := time.LoadLocation(tz[0]); err == nil {
			loc = l
		}
	}

	switch {
	case strings.HasSuffix(v, "Z"):
		t, err = time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		t, err = time.ParseInLocation("20060102T150405", v, loc)
	default:
		t, err = time.ParseInLocation("20060102", v, time.Local)
		allDay = true
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return t.In(time.Local), allDay, nil
}

// categoryOf picks the first known category of a CATEGORIES list.
// Unknown or missing categories map to work.
func categoryOf(list string) event.Category {
	for _, name := range strings.Split(list, ",") {
		if c, err := event.ParseCategory(name); err == nil {
			return c
		}
	}
	return event.CategoryWork
}

func attendeeAddress(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 7 && strings.EqualFold(v[:7], "mailto:") {
		v = v[7:]
	}
	return v
}

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\,`, `,`, `\;`, `;`, `\n`, "\n", `\N`, "\n")

func unescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return textUnescaper.Replace(s)
}

// encodeICS writes events as a PUBLISH calendar of non-recurring VEVENTs.
func encodeICS(w io.Writer, events []*event.Event) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	stamp := time.Now().UTC()
	for i, e := range events {
		start, err := e.StartsAt(time.Local)
		if err != nil {
			return fmt.Errorf("event %q: %w", e.ID, err)
		}

		id := e.ID
		if id == "" {
			id = fmt.Sprintf("rocinante-%d", i+1)
		}
		ve := cal.AddEvent(id)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(time.Duration(e.Duration) * time.Minute))
		ve.SetSummary(e.Title)
		ve.SetProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(e.Category)))
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.Color != "" {
			ve.SetProperty(ical.ComponentProperty("COLOR"), e.Color)
		}
		for _, a := range e.Attendees {
			ve.AddAttendee(a) // prefixed with mailto:
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
