package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelError, ScopeRun, false},
		{LevelPhase, ScopeRun, true},
		{LevelPhase, ScopeCheck, true},
		{LevelPhase, ScopeQuery, false},
		{LevelDetail, ScopeQuery, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != strings.ToLower(s) {
			t.Fatalf("round trip %q -> %s", s, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeNode, name, "", 0)
	}
	got := r.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, want := range []string{"c", "d", "e"} {
		if got[i].Name != want {
			t.Fatalf("event %d: got %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestSpanFiltersByScope(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	run := Begin(r, ScopeRun, "run", 0)
	q := Begin(r, ScopeQuery, "uses", run.ID())
	if q.ID() != 0 {
		t.Fatalf("query span should be suppressed at phase level")
	}
	q.End("")
	run.WithExtra("checks", "2").End("ok")

	evs := r.Snapshot()
	if len(evs) != 2 {
		t.Fatalf("expected begin/end of run only, got %d events", len(evs))
	}
	if evs[1].Kind != KindSpanEnd || evs[1].Extra["checks"] != "2" || evs[1].Detail != "ok" {
		t.Fatalf("unexpected end event: %+v", evs[1])
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(st, ScopeNode, "fold:literal", "malformed", 7)

	var decoded map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &decoded); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if decoded["name"] != "fold:literal" || decoded["scope"] != "node" || decoded["kind"] != "point" {
		t.Fatalf("unexpected event: %v", decoded)
	}
}

func TestStreamChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatChrome)
	sp := Begin(st, ScopeRun, "run", 0)
	sp.End("")
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome trace %q: %v", buf.String(), err)
	}
	if len(doc.TraceEvents) != 2 || doc.TraceEvents[0]["ph"] != "B" || doc.TraceEvents[1]["ph"] != "E" {
		t.Fatalf("unexpected events: %v", doc.TraceEvents)
	}
}

func TestTextExtraSorted(t *testing.T) {
	ev := &Event{Kind: KindPoint, Name: "x", Extra: map[string]string{"b": "2", "a": "1"}}
	out := string(FormatEvent(ev, FormatText))
	if !strings.Contains(out, "{a=1, b=2}") {
		t.Fatalf("extras not sorted: %q", out)
	}
}

func TestMultiFansOut(t *testing.T) {
	a := NewRingTracer(4, LevelDebug)
	b := NewRingTracer(4, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopeCheck, "p", "", 0)
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatalf("event not delivered to every tracer")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	if Parent(ctx) != 0 {
		t.Fatalf("unexpected parent span")
	}
	if Parent(WithParent(ctx, 9)) != 9 {
		t.Fatalf("parent span not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	return 0, errors.New("disk full")
}

func TestStreamKeepsFirstWriteError(t *testing.T) {
	w := &failingWriter{}
	st := NewStreamTracer(w, LevelDebug, FormatText)
	Point(st, ScopeNode, "a", "", 0)
	Point(st, ScopeNode, "b", "", 0)
	if w.writes != 1 {
		t.Fatalf("writes after failure: %d", w.writes)
	}
	if err := st.Flush(); err == nil || err.Error() != "disk full" {
		t.Fatalf("Flush = %v", err)
	}
}

func TestSpanEndReportsDuration(t *testing.T) {
	r := NewRingTracer(4, LevelPhase)
	sp := Begin(r, ScopeCheck, "check:x", 3)
	time.Sleep(time.Millisecond)
	if d := sp.End(""); d <= 0 {
		t.Fatalf("duration = %v", d)
	}
	evs := r.Snapshot()
	if len(evs) != 2 || evs[0].SpanID != evs[1].SpanID || evs[1].ParentID != 3 || evs[0].GID == 0 {
		t.Fatalf("unexpected events: %+v", evs)
	}
	if evs[1].Seq <= evs[0].Seq {
		t.Fatalf("sequence not increasing")
	}
	var inert *Span
	if inert.End("") != 0 || inert.ID() != 0 {
		t.Fatalf("nil span must be inert")
	}
}

func TestHeartbeatStops(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	h.Stop()
	h.Stop()
	n := len(r.Snapshot())
	if n == 0 {
		t.Fatalf("no heartbeats recorded")
	}
	time.Sleep(5 * time.Millisecond)
	if len(r.Snapshot()) != n {
		t.Fatalf("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatalf("heartbeat on a disabled tracer")
	}
}

func TestConfigFormatByExtension(t *testing.T) {
	cases := map[string]Format{"run.ndjson": FormatNDJSON, "run.json": FormatChrome, "run.log": FormatText, "-": FormatText}
	for path, want := range cases {
		if got := (Config{OutputPath: path}).format(); got != want {
			t.Errorf("%s: got %s, want %s", path, got, want)
		}
	}
}
