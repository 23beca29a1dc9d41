package render

import (
	"fmt"
	"sort"
	"strings"
)

// FlattenTimeline turns the flexible timeline shapes a draft may carry into
// display text: a string passes through, a string array becomes one bullet per
// entry, an array of {time, event} objects becomes "• <time> <event>" rows,
// and a plain object becomes "• <key>: <value>" rows.
func FlattenTimeline(v any) string {
	switch tl := v.(type) {
	case nil:
		return ""
	case string:
		return tl
	case []string:
		var lines []string
		for _, e := range tl {
			lines = append(lines, "• "+e)
		}
		return strings.Join(lines, "\n")
	case []any:
		var lines []string
		for _, e := range tl {
			switch entry := e.(type) {
			case string:
				lines = append(lines, "• "+entry)
			case map[string]any:
				lines = append(lines, "• "+strings.TrimSpace(stringify(entry["time"])+" "+stringify(entry["event"])))
			default:
				lines = append(lines, "• "+stringify(entry))
			}
		}
		return strings.Join(lines, "\n")
	case map[string]any:
		var lines []string
		for _, k := range sortedKeys(tl) {
			lines = append(lines, fmt.Sprintf("• %s: %s", k, stringify(tl[k])))
		}
		return strings.Join(lines, "\n")
	default:
		return stringify(v)
	}
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
