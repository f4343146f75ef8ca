package main

import (
	"strings"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/line"
)

func TestValidSessionID(t *testing.T) {
	if id := newSessionID(); !validSessionID(id) {
		t.Errorf("generated id %q rejected", id)
	}
	for _, id := range []string{"", "abc", strings.Repeat("g", 32), strings.Repeat("a", 33)} {
		if validSessionID(id) {
			t.Errorf("validSessionID(%q) = true", id)
		}
	}
}

func TestSessionManager_LatestAndIDs(t *testing.T) {
	m := newSessionManager(line.DefaultSegments(), 900, time.Millisecond, time.Minute, 0, nil)
	defer m.close()

	if _, ok := m.latest(); ok {
		t.Fatal("empty manager reported a latest session")
	}

	first := m.get(newSessionID())
	time.Sleep(time.Millisecond)
	second := m.get(newSessionID())

	if s, _ := m.latest(); s != second {
		t.Error("latest is not the most recently seen session")
	}
	time.Sleep(time.Millisecond)
	if m.get(first.id) != first {
		t.Fatal("get reopened a live session")
	}
	ids := m.ids()
	if len(ids) != 2 || ids[0] != first.id || ids[1] != second.id {
		t.Errorf("ids = %v, want most recent first", ids)
	}
}

func TestSessionManager_CloseStopsTrackers(t *testing.T) {
	m := newSessionManager(line.DefaultSegments(), 900, time.Hour, time.Minute, 0, nil)
	s := m.get(newSessionID())
	m.close()

	s.registry.Register("hero-start", 0, 0)
	if s.tracker.Flush() {
		t.Error("closed session still schedules rebuilds")
	}
	if m.count() != 0 {
		t.Errorf("count = %d after close", m.count())
	}
}
