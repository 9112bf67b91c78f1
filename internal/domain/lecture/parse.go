package lecture

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenSeparator splits day tokens in schedule notation. Majors use the same
// marker to embed line breaks.
const TokenSeparator = "<p>"

// Parse turns schedule notation such as "월1~3(F207)<p>수4,5" into entries,
// one per day token. Tokens that cannot be read, including slots outside
// 1..SlotCount(), are dropped; Parse never fails and returns nil for blank
// input.
func Parse(raw string) []ScheduleEntry {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var entries []ScheduleEntry
	for _, token := range strings.Split(raw, TokenSeparator) {
		entry, ok := parseToken(strings.TrimSpace(token))
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

func parseToken(token string) (ScheduleEntry, bool) {
	if token == "" {
		return ScheduleEntry{}, false
	}

	digit := strings.IndexFunc(token, unicode.IsDigit)
	if digit <= 0 {
		return ScheduleEntry{}, false
	}
	day := strings.TrimSpace(token[:digit])
	if DayIndex(day) < 0 {
		return ScheduleEntry{}, false
	}

	slots, room := token[digit:], ""
	if open := strings.Index(slots, "("); open >= 0 {
		room = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(slots[open+1:]), ")"))
		slots = slots[:open]
	}

	rng, ok := parseRange(strings.TrimSpace(slots))
	if !ok {
		return ScheduleEntry{}, false
	}
	return ScheduleEntry{Day: day, Range: rng, Room: room}, true
}

func parseRange(s string) ([]int, bool) {
	if from, to, found := strings.Cut(s, "~"); found {
		start, ok := parseSlot(from)
		if !ok {
			return nil, false
		}
		end, ok := parseSlot(to)
		if !ok || end < start {
			return nil, false
		}
		out := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			out = append(out, i)
		}
		return out, true
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		slot, ok := parseSlot(p)
		if !ok {
			return nil, false
		}
		out = append(out, slot)
	}
	return out, len(out) > 0
}

func parseSlot(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > SlotCount() {
		return 0, false
	}
	return n, true
}
