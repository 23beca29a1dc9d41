package intake

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Awareness sources. The resolver is total: every input, including garbage,
// maps to a usable UTC instant plus a source string that records how it was
// derived.
const (
	SourceFallbackNow        = "fallback_now"
	SourceAssumedUTC         = "datetime-local(assumed-utc)"
	SourceParsedISO          = "parsed_iso"
	SourceInvalidFallbackNow = "invalid_fallback_now"
)

type AwarenessResolution struct {
	InstantUTC    time.Time
	Source        string
	RawReceived   string
	OffsetMinutes *int
}

// offsetHint names are evaluated in this fixed order; the first field present
// wins. Sign -1 encodes the client convention where a positive timezone offset
// means "behind UTC" (the Date.getTimezoneOffset convention), so those values
// are negated before being applied.
type offsetHint struct {
	Field string
	Sign  int
}

var offsetHintOrder = []offsetHint{
	{"awarenessOffsetMinutes", 1},
	{"awarenessClientOffsetMinutes", 1},
	{"awarenessTimezoneOffset", -1},
	{"awarenessClientTimezoneOffset", -1},
}

// OffsetHintFields lists the accepted hint field names in priority order.
func OffsetHintFields() []string {
	out := make([]string, 0, len(offsetHintOrder))
	for _, h := range offsetHintOrder {
		out = append(out, h.Field)
	}
	return out
}

var localMinutePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2})$`)

// Layouts with an explicit zone or offset. Naive strings never reach these;
// they are either matched by localMinutePattern or degrade to fallback.
var explicitLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04:05Z0700",
}

// ResolveAwareness turns a raw client-supplied awareness time plus optional
// offset hints into a UTC instant. It never fails: empty input falls back to
// now(), unparseable input falls back to now() with an explicit source marker.
// A bare date-and-minute string is combined with the highest-priority offset
// hint, or assumed to already be UTC when no hint is present, which keeps the
// result independent of the server's local zone.
func ResolveAwareness(raw string, hints map[string]float64, now func() time.Time) AwarenessResolution {
	received := strings.TrimSpace(raw)
	if received == "" {
		return AwarenessResolution{InstantUTC: now().UTC(), Source: SourceFallbackNow, RawReceived: received}
	}

	// Some locales produce "2025-10-19 12:00"; normalize the single space to
	// the date/time separator before matching.
	normalized := strings.Replace(received, " ", "T", 1)

	if m := localMinutePattern.FindStringSubmatch(normalized); m != nil {
		naive := time.Date(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), atoi(m[4]), atoi(m[5]), 0, 0, time.UTC)
		if field, minutes, ok := pickOffset(hints); ok {
			applied := minutes
			return AwarenessResolution{
				InstantUTC:    naive.Add(-time.Duration(applied) * time.Minute),
				Source:        "datetime-local(" + field + ")",
				RawReceived:   received,
				OffsetMinutes: &applied,
			}
		}
		return AwarenessResolution{InstantUTC: naive, Source: SourceAssumedUTC, RawReceived: received}
	}

	for _, layout := range explicitLayouts {
		if ts, err := time.Parse(layout, normalized); err == nil {
			return AwarenessResolution{InstantUTC: ts.UTC(), Source: SourceParsedISO, RawReceived: received}
		}
	}

	return AwarenessResolution{InstantUTC: now().UTC(), Source: SourceInvalidFallbackNow, RawReceived: received}
}

func pickOffset(hints map[string]float64) (string, int, bool) {
	for _, h := range offsetHintOrder {
		v, ok := hints[h.Field]
		if !ok {
			continue
		}
		return h.Field, int(v) * h.Sign, true
	}
	return "", 0, false
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
