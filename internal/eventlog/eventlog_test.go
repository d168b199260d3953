package eventlog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"roguecore/internal/ecs"
)

func TestRecordAndLast(t *testing.T) {
	l := NewMessageLog(0, nil)
	if _, ok := l.Last(); ok {
		t.Fatal("empty log has no last entry")
	}
	l.Record(Entry{Actor: 1, Verb: VerbMove, Cost: 5})
	l.Record(Entry{Actor: 2, Verb: VerbWait, Cost: 5})
	e, ok := l.Last()
	if !ok || e.Actor != 2 || e.Verb != VerbWait {
		t.Fatalf("Last = %+v, %v", e, ok)
	}
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	l := NewMessageLog(3, nil)
	for i := 1; i <= 5; i++ {
		l.Record(Entry{Actor: ecs.EntityID(i), Verb: VerbMove})
	}
	got := l.Entries()
	if len(got) != 3 || got[0].Actor != 3 || got[2].Actor != 5 {
		t.Fatalf("entries = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		e    Entry
		want string
	}{
		{Entry{Actor: 1, Verb: VerbWait}, "entity 1 waits."},
		{Entry{Actor: 1, Verb: VerbMove}, "entity 1 moves."},
		{Entry{Actor: 1, Verb: VerbAttack, Target: 2}, "entity 1 attacks entity 2."},
		{Entry{Actor: 3, Verb: VerbOpenDoor}, "entity 3 opens a door."},
	}
	for _, c := range cases {
		if got := Format(c.e); got != c.want {
			t.Errorf("Format(%+v) = %q, want %q", c.e, got, c.want)
		}
	}
}

func TestMessagesTail(t *testing.T) {
	l := NewMessageLog(0, nil)
	l.Record(Entry{Actor: 1, Verb: VerbWait})
	l.Record(Entry{Actor: 2, Verb: VerbMove})
	msgs := l.Messages(1)
	if len(msgs) != 1 || msgs[0] != "entity 2 moves." {
		t.Fatalf("Messages(1) = %v", msgs)
	}
	if len(l.Messages(10)) != 2 {
		t.Fatal("Messages(n) with n > len returns everything")
	}
}

func TestRecordEmitsDebugLine(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	l := NewMessageLog(0, logger)
	l.Record(Entry{Actor: 7, Verb: VerbAttack, Target: 8, Cost: 4})
	if !strings.Contains(buf.String(), "verb=attack") {
		t.Fatalf("expected structured debug line, got %q", buf.String())
	}
}
