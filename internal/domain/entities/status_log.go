package entities

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// PipelineState is one stage of a component's update lifecycle.
type PipelineState string

const (
	StateUpdateSkipped    PipelineState = "UPDATE_SKIPPED"
	StateUpdateStarted    PipelineState = "UPDATE_STARTED"
	StateFilesUpdated     PipelineState = "FILES_UPDATED"
	StateTestRun          PipelineState = "TEST_RUN"
	StateConfigSaved      PipelineState = "CONFIG_SAVED"
	StateCommittedChanges PipelineState = "COMMITTED_CHANGES"
	StateUpdateDone       PipelineState = "UPDATE_DONE"
)

// StatusEntry is an immutable audit record.
type StatusEntry struct {
	Timestamp time.Time
	State     PipelineState
	Message   string
}

// StatusLog is an append-only audit trail keyed by component name.
// Names are reported in the order they first appeared.
type StatusLog struct {
	names   []string
	entries map[string][]StatusEntry
	nowFunc func() time.Time
}

// NewStatusLog creates an empty log using the wall clock.
func NewStatusLog() *StatusLog {
	return NewStatusLogWithClock(time.Now)
}

// NewStatusLogWithClock creates an empty log with an injected clock.
func NewStatusLogWithClock(nowFunc func() time.Time) *StatusLog {
	return &StatusLog{
		entries: make(map[string][]StatusEntry),
		nowFunc: nowFunc,
	}
}

// Append records a new entry for the component.
func (l *StatusLog) Append(name string, state PipelineState, message string) StatusEntry {
	if _, seen := l.entries[name]; !seen {
		l.names = append(l.names, name)
	}
	entry := StatusEntry{Timestamp: l.nowFunc(), State: state, Message: message}
	l.entries[name] = append(l.entries[name], entry)
	return entry
}

// Entries returns a copy of the entries recorded for the component.
func (l *StatusLog) Entries(name string) []StatusEntry {
	return slices.Clone(l.entries[name])
}

// States returns only the state labels recorded for the component.
func (l *StatusLog) States(name string) []PipelineState {
	states := make([]PipelineState, 0, len(l.entries[name]))
	for _, entry := range l.entries[name] {
		states = append(states, entry.State)
	}
	return states
}

// Last returns the most recent entry for the component.
func (l *StatusLog) Last(name string) (StatusEntry, bool) {
	entries := l.entries[name]
	if len(entries) == 0 {
		return StatusEntry{}, false
	}
	return entries[len(entries)-1], true
}

// Names returns the component names in first-seen order.
func (l *StatusLog) Names() []string {
	return slices.Clone(l.names)
}

// String renders the whole log for diagnostics.
func (l *StatusLog) String() string {
	var sb strings.Builder
	for _, name := range l.names {
		sb.WriteString(name)
		sb.WriteString(":\n")
		for _, entry := range l.entries[name] {
			fmt.Fprintf(&sb, "    %s  %s\n", entry.Timestamp.Format(time.RFC3339Nano), entry.Message)
		}
	}
	return sb.String()
}
