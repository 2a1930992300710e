// Package undo records a reversible description of every completed mutation
// as a LIFO stack. There is one log per session, no redo, and no persistence
// across restarts; depth is bounded only by process memory.
package undo

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// ErrEmpty reports an undo attempt on an empty log.
var ErrEmpty = errors.New("nothing to undo")

// Entry pairs a human-readable description with the inverse action that
// reverses the operation. Entries are owned by the log and consumed on pop.
type Entry struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Inverse     Inverse   `json:"inverse"`
	At          time.Time `json:"at"`
}

// Log is the operation log. It is not safe for concurrent use; the single
// control thread owns it.
type Log struct {
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Push records a completed mutation. Callers push only after the underlying
// mutation has fully succeeded.
func (l *Log) Push(description string, inv Inverse) {
	l.entries = append(l.entries, Entry{
		ID:          uuid.NewString(),
		Description: description,
		Inverse:     inv,
		At:          time.Now(),
	})
}

// Pop removes and returns the most recent entry.
func (l *Log) Pop() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	return e, true
}

// Peek returns the most recent description without consuming it.
func (l *Log) Peek() (string, bool) {
	if len(l.entries) == 0 {
		return "", false
	}
	return l.entries[len(l.entries)-1].Description, true
}

// Len reports the stack depth.
func (l *Log) Len() int { return len(l.entries) }

// Clear drops every entry.
func (l *Log) Clear() { l.entries = nil }

// Entries returns a copy of the stack, oldest first.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// JSON encodes the stack for display. Inverse actions are plain data, so
// the encoding shows exactly what each undo would do without running it.
func (l *Log) JSON() ([]byte, error) {
	return sonic.Marshal(l.entries)
}
