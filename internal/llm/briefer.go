package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
)

const brieferSystemPrompt = `You are a concise personal assistant reviewing a calendar. Output ONLY the exact format shown - no markdown, no extra text.`

const briefPromptTemplate = `Review this agenda and output EXACTLY this format (no markdown, no code blocks):

FOCUS: [ 2-4 word theme of the period ]

⚠️  CLASH: One line per flagged day naming the two overlapping events.
📅 BUSIEST: The busiest day and how many hours are booked.
⏰ DEADLINES: Deadlines and reminders still ahead, with their dates.

SUGGESTIONS:
➜  First concrete change to the agenda.
➜  Second concrete change to the agenda.

Data Format:
- [W] work, [P] personal, [M] meeting, [D] deadline, [R] reminder
- ⚠ marks a day where two consecutive events overlap

Now: %s

Agenda:
%s

Rules:
- Use the exact emoji prefixes shown (⚠️, 📅, ⏰, ➜)
- Keep each line under 70 characters
- If a section has nothing to report, omit that line
- Output plain text only, no markdown formatting`

// Briefer summarizes an agenda in a few lines of plain text.
type Briefer struct {
	client Client
}

// NewBriefer creates a Briefer with the given LLM client.
func NewBriefer(client Client) *Briefer {
	return &Briefer{client: client}
}

// BriefRequest is the agenda to brief on: the events dated in [Start, End].
type BriefRequest struct {
	Start  time.Time
	End    time.Time
	Now    time.Time
	Events []*event.Event
}

// Brief sends the agenda to the LLM and returns its briefing.
func (b *Briefer) Brief(ctx context.Context, req BriefRequest) (string, error) {
	prompt := fmt.Sprintf(briefPromptTemplate,
		req.Now.Format("Mon Jan 2, 2006 15:04"),
		FormatAgenda(req.Start, req.End, req.Events))

	resp, err := b.client.Chat(ctx, []Message{
		{Role: "system", Content: brieferSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("briefing agenda: %w", err)
	}
	return strings.TrimSpace(resp), nil
}

// FormatAgenda renders events day by day, in time order, for LLM
// consumption. Days without events are skipped.
func FormatAgenda(start, end time.Time, events []*event.Event) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Period: %s - %s\n", start.Format("Mon Jan 2"), end.Format("Mon Jan 2, 2006"))

	days := dateutil.Span(start, end)
	groups := calendar.GroupByDate(events, days)
	for _, d := range days {
		dayEvents := calendar.SortByTime(groups[dateutil.FormatKey(d)])
		if len(dayEvents) == 0 {
			continue
		}

		marker := ""
		if calendar.HasConflict(dayEvents) {
			marker = " ⚠"
		}
		fmt.Fprintf(&sb, "\n%s%s\n", d.Format("Mon Jan 2"), marker)

		for _, e := range dayEvents {
			end, err := e.End()
			if err != nil {
				end = "?"
			}
			fmt.Fprintf(&sb, "  %s-%s  %s  %s  %s\n", e.Time, end, categoryTag(e.Category), e.Title, formatDuration(e.Duration))
		}
	}
	return sb.String()
}

func categoryTag(c event.Category) string {
	if c == "" {
		return "[?]"
	}
	return "[" + strings.ToUpper(string(c[:1])) + "]"
}

// formatDuration formats minutes as a human-readable duration.
func formatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	hours, mins := minutes/60, minutes%60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}
