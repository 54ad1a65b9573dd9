// Package eventfile reads and writes event documents: JSON, TOML, YAML and
// iCalendar. A malformed record never aborts a load; it is skipped and
// reported as a RecordError.
package eventfile

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/javiermolinar/rocinante/internal/event"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatICS  Format = "ics"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatTOML, FormatYAML, FormatICS}

// ErrUnsupportedFormat is returned for an unknown format or file extension.
var ErrUnsupportedFormat = errors.New("unsupported document format (want json, toml, yaml or ics)")

// ParseFormat parses a format name, ignoring case. "yml" is accepted.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTOML, FormatYAML, FormatICS:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "ical", "icalendar":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// RecordError reports one document record that was skipped.
type RecordError struct {
	Index int    // 1-based position in the document
	ID    string // record id, if it had one
	Err   error
}

func (e *RecordError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("record %d (id %q): %v", e.Index, e.ID, e.Err)
	}
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// document is the keyed form shared by every structured format.
type document struct {
	Events []*event.Event `json:"events" toml:"events" yaml:"events"`
}

// Load reads the document at path. A missing file yields no events and no
// error, so a fresh install starts with an empty calendar.
func Load(path string) ([]*event.Event, []RecordError, error) {
	doc, err := load(path)
	if err != nil {
		return nil, nil, err
	}
	return doc.events, doc.skipped, nil
}

// Decode reads every record of a document. Records that fail to decode,
// fail validation or repeat an earlier id are skipped and reported.
func Decode(r io.Reader, format Format) ([]*event.Event, []RecordError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document: %w", err)
	}
	doc, err := decode(data, format)
	if err != nil {
		return nil, nil, err
	}
	return doc.events, doc.skipped, nil
}

// loaded is a decoded document. index holds the 1-based document position
// of each accepted event.
type loaded struct {
	events  []*event.Event
	index   []int
	skipped []RecordError
}

func load(path string) (*loaded, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &loaded{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading event file: %w", err)
	}

	doc, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return doc, nil
}

func decode(data []byte, format Format) (*loaded, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		if _, err := ParseFormat(string(format)); err != nil {
			return nil, err
		}
		return &loaded{}, nil
	}

	var (
		records []record
		err     error
	)
	switch format {
	case FormatJSON:
		records, err = decodeJSON(data)
	case FormatTOML:
		records, err = decodeTOML(data)
	case FormatYAML:
		records, err = decodeYAML(data)
	case FormatICS:
		records, err = decodeICS(data)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return collect(records), nil
}

// record is one decoded entry: an event or the reason it could not be read.
type record struct {
	event *event.Event
	id    string
	err   error
}

func collect(records []record) *loaded {
	doc := &loaded{}
	seen := make(map[string]bool)
	for i, rec := range records {
		if rec.err == nil {
			rec.err = event.Validate(rec.event)
		}
		if rec.err == nil && rec.event.ID != "" {
			if seen[rec.event.ID] {
				rec.err = event.ErrDuplicateID
			}
			seen[rec.event.ID] = true
		}
		if rec.err != nil {
			id := rec.id
			if id == "" && rec.event != nil {
				id = rec.event.ID
			}
			doc.skipped = append(doc.skipped, RecordError{Index: i + 1, ID: id, Err: rec.err})
			continue
		}
		doc.events = append(doc.events, rec.event)
		doc.index = append(doc.index, i+1)
	}
	return doc
}

// Encode writes events in the given format.
func Encode(w io.Writer, format Format, events []*event.Event) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, events)
	case FormatTOML:
		return encodeTOML(w, events)
	case FormatYAML:
		return encodeYAML(w, events)
	case FormatICS:
		return encodeICS(w, events)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ErrUnreadableRecords blocks rewriting a document that still has records
// that could not be read; rewriting would drop them.
var ErrUnreadableRecords = errors.New("events file has unreadable records; fix them first")

// Save writes events to path in the format named by its extension,
// replacing the file and creating its directory.
func Save(path string, events []*event.Event) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, format, events); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating events directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing events file: %w", err)
	}
	return nil
}

// Append adds events to the end of the document at path, creating it when
// it does not exist.
func Append(path string, added []*event.Event) error {
	existing, err := readable(path)
	if err != nil {
		return err
	}
	return Save(path, append(existing, added...))
}

// Rewrite replaces the document at path with events.
func Rewrite(path string, events []*event.Event) error {
	if _, err := readable(path); err != nil {
		return err
	}
	return Save(path, events)
}

// readable loads path and fails with ErrUnreadableRecords if any record
// was skipped.
func readable(path string) ([]*event.Event, error) {
	if _, err := FormatFromPath(path); err != nil {
		return nil, err
	}
	existing, skipped, err := Load(path)
	if err != nil {
		return nil, err
	}
	if len(skipped) > 0 {
		return nil, fmt.Errorf("%w (%d)", ErrUnreadableRecords, len(skipped))
	}
	return existing, nil
}

// Import loads the document at path into repo. Events the repository
// rejects (a duplicate id, for example) are reported with the decode
// failures. It returns the number of events stored.
func Import(ctx context.Context, repo event.Repository, path string) (int, []RecordError, error) {
	doc, err := load(path)
	if err != nil {
		return 0, nil, err
	}

	stored := 0
	skipped := doc.skipped
	for i, e := range doc.events {
		id := e.ID
		if err := repo.CreateEvent(ctx, e); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stored, skipped, ctxErr
			}
			skipped = append(skipped, RecordError{Index: doc.index[i], ID: id, Err: err})
			continue
		}
		stored++
	}
	slices.SortStableFunc(skipped, func(a, b RecordError) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return stored, skipped, nil
}
