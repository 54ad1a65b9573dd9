// Package summary aggregates agenda statistics: weekly counts, the category
// histogram and the upcoming events.
package summary

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/llm"
)

// UpcomingLimit is the maximum number of upcoming events reported.
const UpcomingLimit = 3

// Statistics holds the aggregated view of an event collection relative to
// a reference time.
type Statistics struct {
	ThisWeekStart time.Time // Sunday of the week containing now
	NextWeekStart time.Time
	ThisWeek      int
	NextWeek      int
	ByCategory    map[event.Category]int
	Upcoming      []*event.Event
	Insight       string
}

// CategoryCount is one histogram entry.
type CategoryCount struct {
	Category event.Category
	Count    int
}

// Summarize computes the statistics of events at now.
//
// This week is the Sunday-to-Saturday week containing now and next week the
// seven days after it. Events whose date does not parse count toward the
// category histogram only.
func Summarize(events []*event.Event, now time.Time) *Statistics {
	loc := now.Location()
	thisStart := dateutil.StartOfWeek(now)
	nextStart := thisStart.AddDate(0, 0, 7)
	nextEnd := nextStart.AddDate(0, 0, 7)
	today := dateutil.FormatKey(now)

	s := &Statistics{
		ThisWeekStart: thisStart,
		NextWeekStart: nextStart,
		ByCategory:    make(map[event.Category]int),
	}

	var thisWeek, nextWeek []*event.Event
	for _, e := range events {
		s.ByCategory[e.Category]++

		d, err := e.Day(loc)
		if err != nil {
			continue
		}
		switch {
		case !d.Before(thisStart) && d.Before(nextStart):
			thisWeek = append(thisWeek, e)
		case !d.Before(nextStart) && d.Before(nextEnd):
			nextWeek = append(nextWeek, e)
		}
	}
	s.ThisWeek = len(thisWeek)
	s.NextWeek = len(nextWeek)

	type candidate struct {
		e  *event.Event
		at time.Time
	}
	var upcoming []candidate
	for _, e := range slices.Concat(thisWeek, nextWeek) {
		at, err := e.StartsAt(loc)
		if err != nil {
			continue
		}
		if at.After(now) || e.Date == today {
			upcoming = append(upcoming, candidate{e: e, at: at})
		}
	}
	slices.SortStableFunc(upcoming, func(a, b candidate) int {
		return a.at.Compare(b.at)
	})
	for _, c := range upcoming[:min(len(upcoming), UpcomingLimit)] {
		s.Upcoming = append(s.Upcoming, c.e)
	}
	return s
}

// Histogram returns the category counts in display order. Categories with
// no events are included with a zero count.
func (s *Statistics) Histogram() []CategoryCount {
	result := make([]CategoryCount, 0, len(event.Categories))
	for _, c := range event.Categories {
		result = append(result, CategoryCount{Category: c, Count: s.ByCategory[c]})
	}
	return result
}

// TopCategories returns the n categories with the most events, ties broken
// by display order. Categories with no events are left out.
func (s *Statistics) TopCategories(n int) []CategoryCount {
	var result []CategoryCount
	for _, cc := range s.Histogram() {
		if cc.Count > 0 {
			result = append(result, cc)
		}
	}
	slices.SortStableFunc(result, func(a, b CategoryCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return result[:min(len(result), n)]
}

// Total returns the number of events counted in the histogram.
func (s *Statistics) Total() int {
	total := 0
	for _, n := range s.ByCategory {
		total += n
	}
	return total
}

// BuildOptions configures the repository-backed summary builder.
type BuildOptions struct {
	Now            time.Time
	IncludeInsight bool
	Provider       string
	Model          string
	BaseURL        string
	Client         llm.Client // overrides Provider/Model/BaseURL when set

	// Filter restricts every figure and the insight agenda to its enabled
	// categories. Nil counts every event.
	Filter *calendar.CategoryFilter
}

// Build loads the events from repo that pass opts.Filter, summarizes them
// and optionally asks the LLM for a briefing of this week and next week.
func Build(ctx context.Context, repo event.Repository, opts BuildOptions) (*Statistics, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	events, err := repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching events: %w", err)
	}
	events = opts.filter(events)
	s := Summarize(events, now)

	if !opts.IncludeInsight || s.ThisWeek+s.NextWeek == 0 {
		return s, nil
	}

	client := opts.Client
	if client == nil {
		if opts.Model == "" {
			return nil, errors.New("model is required for insight")
		}
		client, err = llm.NewClient(opts.Provider, opts.Model, opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
	}

	end := s.NextWeekStart.AddDate(0, 0, 6)
	agenda, err := repo.ListEventsByDateRange(ctx, s.ThisWeekStart, end)
	if err != nil {
		return nil, fmt.Errorf("fetching agenda: %w", err)
	}
	insight, err := llm.NewBriefer(client).Brief(ctx, llm.BriefRequest{
		Start:  s.ThisWeekStart,
		End:    end,
		Now:    now,
		Events: opts.filter(agenda),
	})
	if err != nil {
		return nil, fmt.Errorf("generating insight: %w", err)
	}
	s.Insight = insight
	return s, nil
}

func (o BuildOptions) filter(events []*event.Event) []*event.Event {
	if o.Filter == nil {
		return events
	}
	return calendar.FilterByCategory(events, *o.Filter)
}
