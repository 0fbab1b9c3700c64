package ui

import (
	"strings"
	"testing"
	"time"

	"gradelint/internal/check"
)

func TestProgressModelTracksChecks(t *testing.T) {
	events := make(chan check.Event)
	m := NewProgressModel("checking", []string{"FieldShouldBeFinal", "ListGetter"}, events).(*progressModel)

	m.Update(eventMsg{Check: "FieldShouldBeFinal", Status: check.StatusRunning})
	if got := m.finished(); got != 0 {
		t.Fatalf("finished = %d after running event", got)
	}
	m.Update(eventMsg{Check: "FieldShouldBeFinal", Status: check.StatusDone, Problems: 2, Elapsed: 3 * time.Millisecond})
	m.Update(eventMsg{Check: "ListGetter", Status: check.StatusFailed})
	m.Update(eventMsg{Check: "Unregistered", Status: check.StatusDone})
	if got := m.finished(); got != 2 {
		t.Fatalf("finished = %d, want 2", got)
	}

	view := m.View()
	for _, want := range []string{"checking (2/2)", "2 problems, 3ms", "engine error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatal("done message should quit")
	}
	if !strings.Contains(m.View(), "done: checking") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"ListGetter", 20, "ListGetter"},
		{"CollectionAddAll", 8, "Colle..."},
		{"你好世界", 5, "你..."},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
