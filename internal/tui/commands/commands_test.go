package commands

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/config"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
	"github.com/javiermolinar/rocinante/internal/llm"
)

// fakeRepo keeps events in memory, in insertion order.
type fakeRepo struct {
	events []*event.Event
	nextID int
	err    error
}

func (f *fakeRepo) CreateEvent(_ context.Context, e *event.Event) error {
	if f.err != nil {
		return f.err
	}
	if e.ID == "" {
		f.nextID++
		e.ID = "id-" + strconv.Itoa(f.nextID)
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakeRepo) CreateEvents(ctx context.Context, events []*event.Event) error {
	if f.err != nil {
		return f.err
	}
	for _, e := range events {
		_ = f.CreateEvent(ctx, e)
	}
	return nil
}

func (f *fakeRepo) GetEvent(_ context.Context, id string) (*event.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, event.ErrEventNotFound
}

func (f *fakeRepo) UpdateEvent(_ context.Context, e *event.Event) error {
	if f.err != nil {
		return f.err
	}
	i := slices.IndexFunc(f.events, func(x *event.Event) bool { return x.ID == e.ID })
	if i < 0 {
		return event.ErrEventNotFound
	}
	f.events[i] = e
	return nil
}

func (f *fakeRepo) DeleteEvent(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	i := slices.IndexFunc(f.events, func(x *event.Event) bool { return x.ID == id })
	if i < 0 {
		return event.ErrEventNotFound
	}
	f.events = slices.Delete(f.events, i, i+1)
	return nil
}

func (f *fakeRepo) ListEvents(context.Context) ([]*event.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.events), nil
}

func (f *fakeRepo) ListEventsByDateRange(_ context.Context, start, end time.Time) ([]*event.Event, error) {
	var out []*event.Event
	for _, e := range f.events {
		d, err := e.Day(start.Location())
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) Close() error {
	return nil
}

// fakeClient answers ChatJSON with a canned JSON document.
type fakeClient struct {
	response string
	err      error
	messages []llm.Message
}

func (f *fakeClient) Chat(_ context.Context, messages []llm.Message) (string, error) {
	f.messages = messages
	return f.response, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []llm.Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(content), result)
}

func newEvent(title, date, start string) *event.Event {
	return &event.Event{Title: title, Date: date, Time: start, Duration: 30, Category: event.CategoryWork}
}

func TestLoadEvents(t *testing.T) {
	repo := &fakeRepo{}
	_ = repo.CreateEvent(context.Background(), newEvent("Standup", "2025-01-15", "09:00"))

	msg := LoadEvents(repo)()
	loaded, ok := msg.(EventsLoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want EventsLoadedMsg", msg)
	}
	if len(loaded.Events) != 1 || loaded.Events[0].Title != "Standup" {
		t.Fatalf("events = %+v", loaded.Events)
	}
}

func TestLoadEvents_Error(t *testing.T) {
	boom := errors.New("boom")
	msg := LoadEvents(&fakeRepo{err: boom})()
	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
	if !errors.Is(errMsg.Err, boom) {
		t.Fatalf("err = %v, want wrapped boom", errMsg.Err)
	}
}

func TestMutations(t *testing.T) {
	repo := &fakeRepo{}
	e := newEvent("Review", "2025-01-15", "10:00")

	msg := CreateEvent(repo, e)()
	saved, ok := msg.(EventSavedMsg)
	if !ok || saved.Kind != MutationCreate {
		t.Fatalf("create msg = %+v", msg)
	}
	if saved.Event.ID == "" {
		t.Fatal("created event has no ID")
	}

	updated := saved.Event.Clone()
	updated.Title = "Design review"
	msg = UpdateEvent(repo, updated)()
	if saved, ok = msg.(EventSavedMsg); !ok || saved.Kind != MutationUpdate {
		t.Fatalf("update msg = %+v", msg)
	}
	if repo.events[0].Title != "Design review" || repo.events[0].ID != updated.ID {
		t.Fatalf("stored = %+v", repo.events[0])
	}

	msg = DeleteEvent(repo, updated)()
	if saved, ok = msg.(EventSavedMsg); !ok || saved.Kind != MutationDelete {
		t.Fatalf("delete msg = %+v", msg)
	}
	if len(repo.events) != 0 {
		t.Fatalf("events left = %d", len(repo.events))
	}

	msg = DeleteEvent(repo, updated)()
	errMsg, ok := msg.(ErrMsg)
	if !ok || !errors.Is(errMsg.Err, event.ErrEventNotFound) {
		t.Fatalf("second delete = %+v, want ErrEventNotFound", msg)
	}
}

func TestRunDraft(t *testing.T) {
	client := &fakeClient{response: `{"events": [{"title": "Lunch", "date": "2025-01-16", "time": "13:00", "duration": 60, "category": "personal"}], "warnings": []}`}
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	msg := runDraft(client, "lunch tomorrow", true, nil, now)
	result, ok := msg.(DraftResultMsg)
	if !ok {
		t.Fatalf("msg = %T, want DraftResultMsg", msg)
	}
	if result.Request != "lunch tomorrow" {
		t.Errorf("request = %q", result.Request)
	}
	if len(result.Response.Events) != 1 || result.Response.Events[0].Title != "Lunch" {
		t.Fatalf("events = %+v", result.Response.Events)
	}
	if len(client.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(client.messages))
	}
}

func TestRunDraft_Error(t *testing.T) {
	msg := runDraft(&fakeClient{err: errors.New("offline")}, "x", false, nil, time.Now())
	if _, ok := msg.(ErrMsg); !ok {
		t.Fatalf("msg = %T, want ErrMsg", msg)
	}
}

func TestSaveDraft(t *testing.T) {
	repo := &fakeRepo{}
	resp := &llm.DraftResponse{Events: []llm.DraftedEvent{
		{Title: "Lunch", Date: "2025-01-16", Time: "13:00", Duration: 60, Category: "personal"},
		{Title: "Gym", Date: "2025-01-16", Time: "18:00", Duration: 45, Category: "Personal"},
	}}

	msg := SaveDraft(repo, resp)()
	saved, ok := msg.(DraftSavedMsg)
	if !ok {
		t.Fatalf("msg = %+v, want DraftSavedMsg", msg)
	}
	if saved.Count != 2 || len(repo.events) != 2 {
		t.Fatalf("count = %d, stored = %d", saved.Count, len(repo.events))
	}
}

func TestSaveDraft_Invalid(t *testing.T) {
	repo := &fakeRepo{}
	resp := &llm.DraftResponse{Events: []llm.DraftedEvent{
		{Title: "Late", Date: "2025-01-16", Time: "25:00", Duration: 60, Category: "work"},
	}}

	if _, ok := SaveDraft(repo, resp)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg for an invalid draft")
	}
	if len(repo.events) != 0 {
		t.Fatalf("stored = %d, want 0", len(repo.events))
	}
	if _, ok := SaveDraft(repo, nil)().(ErrMsg); !ok {
		t.Fatal("expected ErrMsg for a nil draft")
	}
}

func TestStats_FollowsFilter(t *testing.T) {
	repo := &fakeRepo{}
	_ = repo.CreateEvent(context.Background(), newEvent("Standup", "2025-01-16", "09:00"))
	gym := newEvent("Gym", "2025-01-16", "18:00")
	gym.Category = event.CategoryPersonal
	_ = repo.CreateEvent(context.Background(), gym)
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.Local)

	filter := calendar.AllCategories().Toggle(event.CategoryWork)
	msg := Stats(repo, config.Default(), filter, now, false)()
	stats, ok := msg.(StatsMsg)
	if !ok {
		t.Fatalf("msg = %+v, want StatsMsg", msg)
	}
	if stats.Stats.ThisWeek != 1 || stats.Stats.ByCategory[event.CategoryWork] != 0 {
		t.Errorf("ThisWeek = %d, ByCategory = %v", stats.Stats.ThisWeek, stats.Stats.ByCategory)
	}
	if len(stats.Stats.Upcoming) != 1 || stats.Stats.Upcoming[0].Title != "Gym" {
		t.Errorf("Upcoming = %+v", stats.Stats.Upcoming)
	}
}

func TestSaveDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	repo := &fakeRepo{}
	_ = repo.CreateEvent(context.Background(), newEvent("Standup", "2025-01-15", "09:00"))
	_ = repo.CreateEvent(context.Background(), newEvent("Review", "2025-01-15", "10:00"))

	msg := SaveDocument(repo, path)()
	saved, ok := msg.(DocumentSavedMsg)
	if !ok {
		t.Fatalf("msg = %+v, want DocumentSavedMsg", msg)
	}
	if saved.Count != 2 || saved.Path != path {
		t.Fatalf("saved = %+v", saved)
	}

	events, skipped, err := eventfile.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(skipped) != 0 || len(events) != 2 {
		t.Fatalf("events = %d, skipped = %d", len(events), len(skipped))
	}
	if events[0].ID != repo.events[0].ID {
		t.Errorf("first id = %q, want %q", events[0].ID, repo.events[0].ID)
	}
}
