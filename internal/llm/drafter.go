package llm

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
)

const drafterPrompt = `You are a calendar assistant turning a short request into calendar events.

Context:
- Current date and time: %s, %s %s (format: DayOfWeek, YYYY-MM-DD HH:MM)
- Tomorrow: %s (%s)
- Week starts on Sunday

%s

User request: "%s"

Date parsing:
- "today" → %s
- "tomorrow" → %s
- "monday", "next monday" → next occurrence of Monday
- "in X days" → add X days to today
- "next week" → add 7 days to today
- Explicit "YYYY-MM-DD" → use that exact date

Rules:
1. Resolve ALL dates to YYYY-MM-DD format in "date"
2. Use 24-hour zero-padded time (HH:MM) in "time"
3. "duration" is in minutes; default to 60 when the request does not say
4. Default "time" to 09:00 when the request does not say
5. "category" must be one of: work, personal, meeting, deadline, reminder
6. Add a warning if an event overlaps an existing event listed above
7. Never invent attendees or locations that are not in the request

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "events": [
    {
      "title": "string",
      "date": "YYYY-MM-DD",
      "time": "HH:MM",
      "duration": 60,
      "category": "work",
      "description": "string",
      "location": "string"
    }
  ],
  "warnings": ["string"]
}`

const drafterPromptCompact = `Turn the request into calendar events. Return JSON only.

Today: %s (%s)
Tomorrow: %s (%s)
Current time: %s

%s

User request: "%s"

Rules:
- date YYYY-MM-DD, time HH:MM (24-hour), duration in minutes (default 60).
- category is one of work, personal, meeting, deadline, reminder.
- "warnings" must be an array of strings.

JSON schema:
{"events": [{"title": "string", "date": "YYYY-MM-DD", "time": "HH:MM", "duration": 60, "category": "work", "description": "string", "location": "string"}], "warnings": ["string"]}`

// DraftRequest contains the input for the drafter.
type DraftRequest struct {
	Input            string
	Now              time.Time
	Existing         []*event.Event // events near Now, for overlap warnings
	UseCompactPrompt bool           // shorter prompt for local models
}

// DraftResponse contains the parsed LLM response.
type DraftResponse struct {
	Events   []DraftedEvent `json:"events"`
	Warnings []string       `json:"warnings"`
}

// DraftedEvent is an event proposed by the LLM. It is not validated.
type DraftedEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Duration    int    `json:"duration"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Drafter uses an LLM to draft events from natural language input.
type Drafter struct {
	client Client
}

// NewDrafter creates a Drafter with the given LLM client.
func NewDrafter(client Client) *Drafter {
	return &Drafter{client: client}
}

// Draft converts natural language input into proposed events.
func (d *Drafter) Draft(ctx context.Context, req DraftRequest) (*DraftResponse, error) {
	var resp DraftResponse
	if err := d.client.ChatJSON(ctx, d.BuildMessages(req), &resp); err != nil {
		return nil, fmt.Errorf("drafting events: %w", err)
	}
	return &resp, nil
}

// BuildMessages creates the message list for a drafting request.
func (d *Drafter) BuildMessages(req DraftRequest) []Message {
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := now.Format("2006-01-02")
	tomorrow := now.AddDate(0, 0, 1)
	existing := formatExisting(req.Existing)

	var prompt string
	if req.UseCompactPrompt {
		prompt = fmt.Sprintf(drafterPromptCompact,
			now.Format("Monday"), today,
			tomorrow.Format("Monday"), tomorrow.Format("2006-01-02"),
			now.Format("15:04"),
			existing,
			req.Input,
		)
	} else {
		prompt = fmt.Sprintf(drafterPrompt,
			now.Format("Monday"), today, now.Format("15:04"),
			tomorrow.Format("Monday"), tomorrow.Format("2006-01-02"),
			existing,
			req.Input,
			today,
			tomorrow.Format("2006-01-02"),
		)
	}

	return []Message{{Role: "system", Content: prompt}}
}

func formatExisting(events []*event.Event) string {
	if len(events) == 0 {
		return "Existing events: None"
	}

	sorted := calendar.SortByTime(events)
	slices.SortStableFunc(sorted, func(a, b *event.Event) int {
		return strings.Compare(a.Date, b.Date)
	})

	var sb strings.Builder
	sb.WriteString("Existing events (warn on overlap):\n")
	for _, e := range sorted {
		end, err := e.End()
		if err != nil {
			end = "?"
		}
		fmt.Fprintf(&sb, "- %s %s-%s: %s [%s]\n", e.Date, e.Time, end, e.Title, e.Category)
	}
	return sb.String()
}

// ToEvents converts the drafted events into validated domain events.
// IDs are left empty for the repository to assign.
func (r *DraftResponse) ToEvents() ([]*event.Event, error) {
	events := make([]*event.Event, 0, len(r.Events))
	for i, de := range r.Events {
		e := de.toEvent()
		if err := event.Validate(e); err != nil {
			return nil, fmt.Errorf("drafted event %d (%q): %w", i+1, de.Title, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// Issues lists one message per drafted event that would fail validation.
func (r *DraftResponse) Issues() []string {
	var issues []string
	for i, de := range r.Events {
		if err := event.Validate(de.toEvent()); err != nil {
			issues = append(issues, fmt.Sprintf("event %d (%q): %v", i+1, de.Title, err))
		}
	}
	return issues
}

func (de DraftedEvent) toEvent() *event.Event {
	e := &event.Event{
		Title:       strings.TrimSpace(de.Title),
		Date:        strings.TrimSpace(de.Date),
		Time:        strings.TrimSpace(de.Time),
		Duration:    de.Duration,
		Description: strings.TrimSpace(de.Description),
		Location:    strings.TrimSpace(de.Location),
	}
	if c, err := event.ParseCategory(de.Category); err == nil {
		e.Category = c
	} else {
		e.Category = event.Category(de.Category)
	}
	return e
}
