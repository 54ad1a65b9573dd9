package eventfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/javiermolinar/rocinante/internal/event"
)

// decodeJSON accepts a top-level array of events or an object with an
// "events" array.
func decodeJSON(data []byte) ([]record, error) {
	data = bytes.TrimSpace(data)

	var raw []json.RawMessage
	if data[0] == '{' {
		var doc struct {
			Events []json.RawMessage `json:"events"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing JSON document: %w", err)
		}
		raw = doc.Events
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}

	records := make([]record, len(raw))
	for i, msg := range raw {
		var e event.Event
		if err := json.Unmarshal(msg, &e); err != nil {
			records[i] = record{id: peekJSONID(msg), err: fmt.Errorf("decoding event: %w", err)}
			continue
		}
		records[i] = record{event: &e}
	}
	return records, nil
}

func peekJSONID(msg json.RawMessage) string {
	var probe struct {
		ID any `json:"id"`
	}
	if json.Unmarshal(msg, &probe) != nil || probe.ID == nil {
		return ""
	}
	return fmt.Sprint(probe.ID)
}

func encodeJSON(w io.Writer, events []*event.Event) error {
	if events == nil {
		events = []*event.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
