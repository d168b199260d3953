// Package eventlog records one entry per successfully resolved action. It is
// the message feed presentation layers read from; deferred and blocked
// actions never reach it.
package eventlog

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"roguecore/internal/ecs"
)

// Verb names what an actor did.
type Verb uint8

const (
	VerbWait Verb = iota
	VerbMove
	VerbAttack
	VerbOpenDoor
)

func (v Verb) String() string {
	switch v {
	case VerbWait:
		return "wait"
	case VerbMove:
		return "move"
	case VerbAttack:
		return "attack"
	case VerbOpenDoor:
		return "open door"
	}
	return "unknown"
}

// Entry is one resolved action.
type Entry struct {
	Actor  ecs.EntityID
	Verb   Verb
	Target ecs.EntityID // NilEntity unless Verb is VerbAttack
	Cost   int
}

// Log receives resolved actions.
type Log interface {
	Record(e Entry)
}

// Format renders e as a one-line message.
func Format(e Entry) string {
	switch e.Verb {
	case VerbWait:
		return fmt.Sprintf("%v waits.", e.Actor)
	case VerbMove:
		return fmt.Sprintf("%v moves.", e.Actor)
	case VerbAttack:
		return fmt.Sprintf("%v attacks %v.", e.Actor, e.Target)
	case VerbOpenDoor:
		return fmt.Sprintf("%v opens a door.", e.Actor)
	}
	return fmt.Sprintf("%v does something.", e.Actor)
}

// MessageLog keeps the most recent entries in order.
type MessageLog struct {
	entries  []Entry
	capacity int
	logger   logrus.FieldLogger
}

// NewMessageLog returns a log holding at most capacity entries (unbounded
// when capacity <= 0). logger may be nil.
func NewMessageLog(capacity int, logger logrus.FieldLogger) *MessageLog {
	return &MessageLog{capacity: capacity, logger: logger}
}

// Record implements Log.
func (l *MessageLog) Record(e Entry) {
	l.entries = append(l.entries, e)
	if l.capacity > 0 && len(l.entries) > l.capacity {
		l.entries = l.entries[len(l.entries)-l.capacity:]
	}
	if l.logger != nil {
		l.logger.WithFields(logrus.Fields{
			"actor": uint64(e.Actor),
			"verb":  e.Verb.String(),
			"cost":  e.Cost,
		}).Debug("action resolved")
	}
}

// Entries returns a copy of the retained entries, oldest first.
func (l *MessageLog) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of retained entries.
func (l *MessageLog) Len() int { return len(l.entries) }

// Last returns the newest entry.
func (l *MessageLog) Last() (Entry, bool) {
	if len(l.entries) == 0 {
		return Entry{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Messages returns the last n entries formatted, oldest first.
func (l *MessageLog) Messages(n int) []string {
	start := 0
	if n >= 0 && len(l.entries) > n {
		start = len(l.entries) - n
	}
	out := make([]string, 0, len(l.entries)-start)
	for _, e := range l.entries[start:] {
		out = append(out, Format(e))
	}
	return out
}
