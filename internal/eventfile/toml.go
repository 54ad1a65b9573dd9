package eventfile

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/rocinante/internal/event"
)

// decodeTOML reads an [[events]] array of tables. Each table is decoded on
// its own so one bad table does not hide the others.
func decodeTOML(data []byte) ([]record, error) {
	var doc struct {
		Events []map[string]any `toml:"events"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing TOML document: %w", err)
	}

	records := make([]record, len(doc.Events))
	for i, table := range doc.Events {
		id, _ := table["id"].(string)
		normalizeTOMLTable(table)

		encoded, err := toml.Marshal(table)
		if err != nil {
			records[i] = record{id: id, err: fmt.Errorf("decoding event: %w", err)}
			continue
		}
		var e event.Event
		if err := toml.Unmarshal(encoded, &e); err != nil {
			records[i] = record{id: id, err: fmt.Errorf("decoding event: %w", err)}
			continue
		}
		records[i] = record{event: &e}
	}
	return records, nil
}

// normalizeTOMLTable turns bare TOML dates and times (date = 2025-01-15,
// time = 09:30:00) into the string forms the event fields use.
func normalizeTOMLTable(table map[string]any) {
	if d, ok := table["date"].(toml.LocalDate); ok {
		table["date"] = d.String()
	}
	if t, ok := table["time"].(toml.LocalTime); ok {
		table["time"] = event.FormatTime(t.Hour, t.Minute)
	}
}

func encodeTOML(w io.Writer, events []*event.Event) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(document{Events: events}); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}
