package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/rocinante/internal/calendar"
	"github.com/javiermolinar/rocinante/internal/event"
	"github.com/javiermolinar/rocinante/internal/tui/commands"
)

// DebugLogger logs keystrokes, navigation and mutations as JSON lines.
type DebugLogger struct {
	mu      sync.Mutex
	w       io.WriteCloser
	enabled bool
	seq     int
}

// Global debug logger instance
var debugLog *DebugLogger

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "rocinante-debug.log"

// InitDebugLogger initializes the debug logger if debug mode is enabled.
func InitDebugLogger(enabled bool) error {
	if !enabled {
		debugLog = &DebugLogger{enabled: false}
		return nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}
	setDebugWriter(f)
	return nil
}

func setDebugWriter(w io.WriteCloser) {
	debugLog = &DebugLogger{w: w, enabled: true}
	debugLog.log("DEBUG_START", map[string]any{
		"log_file": DebugLogPath,
		"time":     time.Now().Format(time.RFC3339),
	})
}

// CloseDebugLogger closes the debug log file.
func CloseDebugLogger() {
	if debugLog != nil && debugLog.w != nil {
		debugLog.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = debugLog.w.Close()
	}
	debugLog = nil
}

// log writes a structured log entry.
func (d *DebugLogger) log(event string, data map[string]any) {
	if d == nil || !d.enabled || d.w == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	entry := map[string]any{
		"seq":   d.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(d.w, "%s\n", b)
}

func debugEnabled() bool {
	return debugLog != nil && debugLog.enabled
}

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	if !debugEnabled() {
		return
	}
	debugLog.log("KEY_PRESS", map[string]any{
		"key": msg.String(),
	})
}

// LogNavigate logs a change of the view state.
func LogNavigate(from, to calendar.ViewState, reason string) {
	if !debugEnabled() {
		return
	}
	debugLog.log("NAVIGATE", map[string]any{
		"from":   from.String(),
		"to":     to.String(),
		"reason": reason,
	})
}

// LogFilterToggle logs a category filter change.
func LogFilterToggle(c event.Category, enabled bool) {
	if !debugEnabled() {
		return
	}
	debugLog.log("FILTER_TOGGLE", map[string]any{
		"category": string(c),
		"enabled":  enabled,
	})
}

// LogMutation logs a repository change. e is nil for batch inserts.
func LogMutation(kind commands.MutationKind, e *event.Event) {
	if !debugEnabled() {
		return
	}
	data := map[string]any{"kind": string(kind)}
	if e != nil {
		data["id"] = e.ID
		data["title"] = truncateStr(e.Title, 30)
		data["date"] = e.Date
		data["time"] = e.Time
	}
	debugLog.log("MUTATION", data)
}

// LogError logs an error.
func LogError(context string, err error) {
	if !debugEnabled() {
		return
	}
	debugLog.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

// truncateStr truncates a string to max runes.
func truncateStr(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
