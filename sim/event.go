// Defines the narrative Event type emitted by the turn engine and the
// most-recent-first EventLog the presentation layer renders from.

package sim

import "fmt"

// Severity classifies a narrative event for rendering.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// severityIcons maps each severity to its display prefix.
var severityIcons = map[Severity]string{
	SeverityInfo:    "[i]",
	SeveritySuccess: "[+]",
	SeverityWarning: "[!]",
	SeverityDanger:  "[X]",
}

// Event is a single narrative outcome produced while applying a turn.
// In-game failures (failed launches, stockouts) are Events, never errors.
type Event struct {
	Quarter  int
	Severity Severity
	Message  string
}

// String renders the event the way the log displays it.
func (e Event) String() string {
	icon, ok := severityIcons[e.Severity]
	if !ok {
		icon = severityIcons[SeverityInfo]
	}
	return fmt.Sprintf("%s Q%d: %s", icon, e.Quarter, e.Message)
}

// EventLog holds every event of a session, most recent first.
// Growth is unbounded; the display layer truncates via Recent.
type EventLog struct {
	entries []Event
}

// Add prepends an event so that index 0 is always the newest entry.
func (l *EventLog) Add(e Event) {
	l.entries = append([]Event{e}, l.entries...)
}

// Recent returns up to n newest events, newest first.
func (l *EventLog) Recent(n int) []Event {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[:n]
}

// Len returns the total number of logged events.
func (l *EventLog) Len() int {
	return len(l.entries)
}
