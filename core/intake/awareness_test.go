package intake

import (
	"testing"
	"time"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestResolveAwarenessOffsetHint(t *testing.T) {
	res := ResolveAwareness("2025-10-19T12:00", map[string]float64{"awarenessOffsetMinutes": 120}, fixedNow)
	want := time.Date(2025, 10, 19, 10, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
	if res.Source != "datetime-local(awarenessOffsetMinutes)" {
		t.Fatalf("source = %q", res.Source)
	}
	if res.OffsetMinutes == nil || *res.OffsetMinutes != 120 {
		t.Fatalf("offset = %v", res.OffsetMinutes)
	}
}

func TestResolveAwarenessTimezoneOffsetNegated(t *testing.T) {
	// getTimezoneOffset convention: positive means behind UTC, so +60 there is
	// UTC+(-1h) and the naive local time is one hour ahead of UTC local.
	res := ResolveAwareness("2025-10-19T12:00", map[string]float64{"awarenessTimezoneOffset": 60}, fixedNow)
	want := time.Date(2025, 10, 19, 13, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
	if res.OffsetMinutes == nil || *res.OffsetMinutes != -60 {
		t.Fatalf("offset = %v", res.OffsetMinutes)
	}
	if res.Source != "datetime-local(awarenessTimezoneOffset)" {
		t.Fatalf("source = %q", res.Source)
	}
}

func TestResolveAwarenessHintPriority(t *testing.T) {
	res := ResolveAwareness("2025-10-19T12:00", map[string]float64{
		"awarenessOffsetMinutes":  60,
		"awarenessTimezoneOffset": -600,
	}, fixedNow)
	if res.Source != "datetime-local(awarenessOffsetMinutes)" {
		t.Fatalf("source = %q, highest-priority hint must win", res.Source)
	}
	want := time.Date(2025, 10, 19, 11, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
}

func TestResolveAwarenessAssumedUTC(t *testing.T) {
	res := ResolveAwareness("2025-10-19T12:00", nil, fixedNow)
	want := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
	if res.Source != SourceAssumedUTC {
		t.Fatalf("source = %q", res.Source)
	}
	if res.OffsetMinutes != nil {
		t.Fatalf("offset should be nil, got %v", *res.OffsetMinutes)
	}
}

func TestResolveAwarenessSpaceSeparator(t *testing.T) {
	res := ResolveAwareness("2025-10-19 12:00", nil, fixedNow)
	if res.Source != SourceAssumedUTC {
		t.Fatalf("source = %q", res.Source)
	}
	want := time.Date(2025, 10, 19, 12, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
}

func TestResolveAwarenessExplicitZone(t *testing.T) {
	res := ResolveAwareness("2025-10-19T12:00:00+02:00", map[string]float64{"awarenessOffsetMinutes": 600}, fixedNow)
	want := time.Date(2025, 10, 19, 10, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
	if res.Source != SourceParsedISO {
		t.Fatalf("source = %q, explicit zone must ignore hints", res.Source)
	}
}

func TestResolveAwarenessEmpty(t *testing.T) {
	res := ResolveAwareness("   ", nil, fixedNow)
	if res.Source != SourceFallbackNow {
		t.Fatalf("source = %q", res.Source)
	}
	if !res.InstantUTC.Equal(fixedNow()) {
		t.Fatalf("instant = %v", res.InstantUTC)
	}
}

func TestResolveAwarenessGarbage(t *testing.T) {
	res := ResolveAwareness("not a timestamp", nil, fixedNow)
	if res.Source != SourceInvalidFallbackNow {
		t.Fatalf("source = %q", res.Source)
	}
	if !res.InstantUTC.Equal(fixedNow()) {
		t.Fatalf("instant = %v", res.InstantUTC)
	}
	if res.RawReceived != "not a timestamp" {
		t.Fatalf("raw = %q", res.RawReceived)
	}
}

func TestResolveAwarenessZeroOffsetHint(t *testing.T) {
	res := ResolveAwareness("2025-01-01T09:00", map[string]float64{"awarenessOffsetMinutes": 0}, fixedNow)
	if res.Source != "datetime-local(awarenessOffsetMinutes)" {
		t.Fatalf("source = %q, a present zero hint must still count", res.Source)
	}
	want := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	if !res.InstantUTC.Equal(want) {
		t.Fatalf("instant = %v, want %v", res.InstantUTC, want)
	}
}
