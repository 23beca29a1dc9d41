package render

import "testing"

func TestFlattenTimeline(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "09:00 detection", "09:00 detection"},
		{"string slice", []string{"a", "b"}, "• a\n• b"},
		{"any slice of strings", []any{"a", "b"}, "• a\n• b"},
		{
			"time event objects",
			[]any{map[string]any{"time": "09:00", "event": "detection"}},
			"• 09:00 detection",
		},
		{
			"plain object",
			map[string]any{"b": "second", "a": "first"},
			"• a: first\n• b: second",
		},
		{"number", 42.0, "42"},
	}
	for _, c := range cases {
		if got := FlattenTimeline(c.in); got != c.want {
			t.Fatalf("%s: FlattenTimeline = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestFlattenTimelineMixedEntries(t *testing.T) {
	in := []any{
		"plain entry",
		map[string]any{"time": "10:00", "event": "containment"},
		3.5,
	}
	want := "• plain entry\n• 10:00 containment\n• 3.5"
	if got := FlattenTimeline(in); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
