package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// LogWriter is an io.Writer that sends each zerolog JSON line as a
// DebugLogMsg to a Bubble Tea program. Use it as a zerolog output. Lines
// written before Attach are held and sent once a program is attached.
type LogWriter struct {
	mu      sync.Mutex
	program *tea.Program
	pending []DebugEntry
}

// NewLogWriter creates a LogWriter with no program attached.
func NewLogWriter() *LogWriter {
	return &LogWriter{}
}

// Attach starts delivering lines to p, beginning with any held ones.
func (w *LogWriter) Attach(p *tea.Program) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.program = p
	pending := w.pending
	w.pending = nil
	go func() {
		for _, e := range pending {
			p.Send(DebugLogMsg{Entry: e})
		}
	}()
}

// Write implements io.Writer. The send is done in a goroutine to avoid
// deadlocking when a log call happens inside Update or a command.
func (w *LogWriter) Write(b []byte) (int, error) {
	entry := parseLine(b)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.program == nil {
		w.pending = append(w.pending, entry)
		if len(w.pending) > maxDebugLines {
			w.pending = w.pending[len(w.pending)-maxDebugLines:]
		}
		return len(b), nil
	}
	p := w.program
	go p.Send(DebugLogMsg{Entry: entry})
	return len(b), nil
}

// reserved fields are rendered in their own columns or dropped.
var reserved = map[string]bool{
	"time": true, "level": true, "component": true, "message": true,
}

// parseLine turns one zerolog JSON line into a table row. The category is
// the component field, falling back to the level. Remaining fields are
// appended to the message as key=value. Lines that are not JSON are shown
// as they are.
func parseLine(b []byte) DebugEntry {
	line := strings.TrimRight(string(b), "\n")
	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return DebugEntry{Category: "log", Message: line}
	}

	entry := DebugEntry{Category: "log"}
	if s, ok := fields["time"].(string); ok {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			entry.Time = t.Format("15:04:05")
		} else {
			entry.Time = s
		}
	}
	if s, ok := fields["level"].(string); ok && s != "" {
		entry.Category = s
	}
	if s, ok := fields["component"].(string); ok && s != "" {
		entry.Category = s
	}

	msg, _ := fields["message"].(string)
	var extra []string
	for k, v := range fields {
		if reserved[k] {
			continue
		}
		extra = append(extra, fmt.Sprintf("%s=%v", k, v))
	}
	sort.Strings(extra)
	if len(extra) > 0 {
		msg = strings.TrimSpace(msg + " " + strings.Join(extra, " "))
	}
	entry.Message = msg
	return entry
}
