package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/crimson-sun/ideastream/internal/model"
)

func routeAll(lines []string) *Router {
	r := New()
	for _, l := range lines {
		r.Route(l)
	}
	return r
}

func accMap(a *model.Accumulated) map[string][]any {
	m := make(map[string][]any)
	for _, s := range a.Steps() {
		v, _ := a.Get(s)
		m[s] = v
	}
	return m
}

func TestReservedStepsFiltered(t *testing.T) {
	r := routeAll([]string{
		`{"step":"init","content":"starting"}`,
		`{"step":"http","content":"sending to api"}`,
		`{"step":"idea_validation","content":"x"}`,
	})

	want := []model.Envelope{{Step: "idea_validation", Content: "x"}}
	if diff := cmp.Diff(want, r.Log()); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]any{"idea_validation": {"x"}}, accMap(r.Accumulated())); diff != "" {
		t.Fatalf("accumulated mismatch (-want +got):\n%s", diff)
	}
	if r.Reserved() != 2 {
		t.Fatalf("expected 2 reserved, got %d", r.Reserved())
	}
}

func TestMalformedLinesIgnored(t *testing.T) {
	r := New()
	lines := []string{"not json", `{"step":"x","content":"y"}`, ""}
	var routed []bool
	for _, l := range lines {
		_, ok := r.Route(l)
		routed = append(routed, ok)
	}

	if diff := cmp.Diff([]bool{false, true, false}, routed); diff != "" {
		t.Fatalf("routed mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Envelope{{Step: "x", Content: "y"}}, r.Log()); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if r.Dropped() != 2 {
		t.Fatalf("expected 2 dropped, got %d", r.Dropped())
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace", "   \t"},
		{"plain text", "Traceback (most recent call last):"},
		{"truncated object", `{"step":"a","content":`},
		{"array", `[{"step":"a"}]`},
		{"string", `"step"`},
		{"no step", `{"content":"y"}`},
		{"empty step", `{"step":"","content":"y"}`},
		{"numeric step", `{"step":3,"content":"y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if env, ok := Parse(tt.line); ok {
				t.Fatalf("expected rejection, got %+v", env)
			}
		})
	}
}

func TestParseContentShapes(t *testing.T) {
	tests := []struct {
		line string
		want any
	}{
		{`{"step":"a","content":"text"}`, "text"},
		{`{"step":"a","content":7.5}`, 7.5},
		{`{"step":"a","content":null}`, nil},
		{`{"step":"a"}`, nil},
		{`{"step":"a","content":["x",1]}`, []any{"x", 1.0}},
		{`{"step":"a","content":{"k":[true]}}`, map[string]any{"k": []any{true}}},
		{"{\"step\":\"a\",\"content\":\"crlf\"}\r", "crlf"},
	}
	for _, tt := range tests {
		env, ok := Parse(tt.line)
		if !ok {
			t.Fatalf("Parse(%q) rejected", tt.line)
		}
		if diff := cmp.Diff(tt.want, env.Content); diff != "" {
			t.Errorf("Parse(%q) content (-want +got):\n%s", tt.line, diff)
		}
	}
}

func TestRecurringStepsAppendInOrder(t *testing.T) {
	r := routeAll([]string{
		`{"step":"legal_analysis","content":"legal_risks=['a'"}`,
		`{"step":"idea_validation","content":"market_score=7"}`,
		`{"step":"legal_analysis","content":", 'b']"}`,
	})

	if diff := cmp.Diff([]string{"legal_analysis", "idea_validation"}, r.Accumulated().Steps()); diff != "" {
		t.Fatalf("step order (-want +got):\n%s", diff)
	}
	got, _ := r.Accumulated().Get("legal_analysis")
	if diff := cmp.Diff([]any{"legal_risks=['a'", ", 'b']"}, got); diff != "" {
		t.Fatalf("legal content (-want +got):\n%s", diff)
	}
}

func TestRoutingIsDeterministic(t *testing.T) {
	lines := []string{
		`{"step":"a","content":1}`,
		"garbage",
		`{"step":"b","content":2}`,
		`{"step":"init","content":0}`,
		`{"step":"a","content":3}`,
	}
	r1, r2 := routeAll(lines), routeAll(lines)
	if diff := cmp.Diff(r1.Log(), r2.Log()); diff != "" {
		t.Fatalf("logs differ:\n%s", diff)
	}
	if diff := cmp.Diff(accMap(r1.Accumulated()), accMap(r2.Accumulated())); diff != "" {
		t.Fatalf("accumulated differ:\n%s", diff)
	}

	// Reversing the input reverses the log and per-step sequences, nothing else.
	reversed := make([]string, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}
	rr := routeAll(reversed)
	wantLog := []model.Envelope{{Step: "a", Content: 3.0}, {Step: "b", Content: 2.0}, {Step: "a", Content: 1.0}}
	if diff := cmp.Diff(wantLog, rr.Log()); diff != "" {
		t.Fatalf("reversed log (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string][]any{"a": {3.0, 1.0}, "b": {2.0}}, accMap(rr.Accumulated()), cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("reversed accumulated (-want +got):\n%s", diff)
	}
}
