package duel

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded duel event.
type SimLogEntry struct {
	Tick     int
	Round    int
	Side     string  // "A", "B", or "--" for round-wide events
	Category string  // round, turn, shot, impact, ai, tank
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[R01 T=0042] A    impact    hit_terrain      (312,287) crater=30
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[R%02d T=%04d] %-4s %-9s %-16s %s",
		e.Round, e.Tick, e.Side, e.Category, e.Key, e.Value)
}

// SimLog collects structured events. It is unbounded and machine-readable;
// the headless report and the clipboard export both read it.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, the duel also records the
// projectile position on every tick of flight.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick, round int, side, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Round:    round,
		Side:     side,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Verbose reports whether verbose entries are kept.
func (sl *SimLog) Verbose() bool { return sl.verbose }

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterSide returns entries for one side label.
func (sl *SimLog) FilterSide(side string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Side == side {
			out = append(out, e)
		}
	}
	return out
}

// FilterRound returns entries recorded during round n.
func (sl *SimLog) FilterRound(n int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.Round == n {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// CountSide counts entries matching category, key and side.
func (sl *SimLog) CountSide(category, key, side string) int {
	n := 0
	for _, e := range sl.Filter(category, key) {
		if e.Side == side {
			n++
		}
	}
	return n
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (sl *SimLog) LastOf(category, key string) (SimLogEntry, bool) {
	entries := sl.Filter(category, key)
	if len(entries) == 0 {
		return SimLogEntry{}, false
	}
	return entries[len(entries)-1], true
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatTail returns the last n entries formatted.
func (sl *SimLog) FormatTail(n int) string {
	from := len(sl.entries) - n
	if from < 0 {
		from = 0
	}
	var sb strings.Builder
	for _, e := range sl.entries[from:] {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Summary returns a short human-readable account of the duel so far.
func (sl *SimLog) Summary(scores [2]int, rounds int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Duel summary after %d round(s) ---\n", rounds)
	fmt.Fprintf(&sb, "Score: A=%d  B=%d\n", scores[SideA], scores[SideB])
	for _, side := range []Side{SideA, SideB} {
		s := side.String()
		fmt.Fprintf(&sb, "%s shots=%d hits=%d terrain=%d out=%d\n", s,
			sl.CountSide("shot", "fire", s),
			sl.CountSide("impact", HitTarget.String(), s),
			sl.CountSide("impact", HitTerrain.String(), s),
			sl.CountSide("impact", OutOfBounds.String(), s))
	}
	return sb.String()
}
