package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/eventfile"
)

// reportSkipped prints one muted line per skipped record.
func reportSkipped(w io.Writer, path string, skipped []eventfile.RecordError) {
	if len(skipped) == 0 {
		return
	}
	fmt.Fprintln(w, formatMuted(fmt.Sprintf("%s: skipped %d record(s)", path, len(skipped))))
	for _, rec := range skipped {
		fmt.Fprintln(w, formatMuted("  "+rec.Error()))
	}
}

// appendEvents adds events to the document at path, creating it when it
// does not exist. The document keeps its format.
func appendEvents(path string, added []*event.Event) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	return eventfile.Append(path, added)
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	path, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
