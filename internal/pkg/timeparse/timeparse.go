// Package timeparse normalizes operator-entered time strings into canonical
// 24-hour "HH:MM" values and splits free-text shift descriptions into
// start/end ranges. Input comes from fingerprint devices and hand-typed
// roster notes, so every function here is total: bad input yields a false
// ok or an empty slice, never an error.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Range is a single shift window in canonical "HH:MM" form. End may be
// numerically earlier than Start, which always means the window crosses
// midnight.
type Range struct {
	Start string
	End   string
}

const (
	// MinutesPerDay is used for midnight wrap-around arithmetic.
	MinutesPerDay = 24 * 60
)

var (
	bareHourRe   = regexp.MustCompile(`^([0-9]{1,2})$`)
	nonTimeRe    = regexp.MustCompile(`[^0-9:]`)
	segmentSepRe = regexp.MustCompile(`(?i)\s+and\s+|[/,&]`)
	rangeSepRe   = regexp.MustCompile(`(?i)\s*(?:–|—|-|\bto\b)\s*`)
)

// Marker order matters: PM markers are checked before AM so a string is
// never mistaken for plain 24h input when it carries a modifier.
var (
	pmMarkers = []string{"p.m", "pm", "مساء", "م"}
	amMarkers = []string{"a.m", "am", "صباح", "ص"}
)

// Normalize converts an arbitrary time string into canonical "HH:MM".
// Accepted forms include bare hours ("17"), period separators ("20.30"),
// English and Arabic AM/PM markers, and the literal midnight/noon tokens.
// Minute values of 60 or more overflow into the hour, which corrects a
// known malformation in fingerprint-device exports ("20:76" becomes
// "21:16"). The second return value is false when no time can be read.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// Bare 1-2 digit input is a whole hour. 24 is kept as the
	// midnight-of-next-day sentinel.
	if m := bareHourRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if hour > 24 {
			return "", false
		}
		return fmt.Sprintf("%02d:00", hour), true
	}

	lower := strings.ToLower(s)
	if strings.Contains(lower, "midnight") || strings.Contains(lower, "12mn") {
		return "24:00", true
	}
	if strings.Contains(lower, "noon") {
		return "12:00", true
	}

	pm := containsAny(lower, pmMarkers)
	am := !pm && containsAny(lower, amMarkers)

	cleaned := nonTimeRe.ReplaceAllString(strings.ReplaceAll(lower, ".", ":"), "")
	parts := strings.Split(cleaned, ":")
	if parts[0] == "" {
		return "", false
	}
	if len(parts) == 1 && len(parts[0]) > 2 {
		// A digit run like "0930" with no separator is ambiguous, treat
		// it as unparseable rather than guess.
		return "", false
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", false
	}
	minute := 0
	if len(parts) > 1 && parts[1] != "" {
		minute, err = strconv.Atoi(parts[1])
		if err != nil {
			return "", false
		}
	}

	if minute >= 60 {
		hour += minute / 60
		minute %= 60
	}

	if pm && hour < 12 {
		hour += 12
	}
	if am && hour == 12 {
		hour = 0
	}
	if hour != 24 || minute != 0 {
		hour %= 24
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ParseMultiShifts splits a free-text shift description such as
// "9am-5pm / 9pm-1am" into ranges. Segments are separated by "/", ",",
// "&" or the word "and"; each segment splits on a dash variant or the
// word "to". A pair is kept only when both endpoints normalize. Segments
// that carry the word "starting" with no range are dropped. Output order
// follows input order and overlapping ranges are left as-is for the
// caller.
func ParseMultiShifts(text string) []Range {
	var out []Range
	for _, seg := range segmentSepRe.Split(text, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		parts := rangeSepRe.Split(seg, -1)
		if len(parts) < 2 {
			continue
		}
		eps := endpoints(parts)
		for i := 0; i+1 < len(eps); i += 2 {
			start, okStart := Normalize(eps[i])
			end, okEnd := Normalize(eps[i+1])
			if okStart && okEnd {
				out = append(out, Range{Start: start, End: end})
			}
		}
	}
	return out
}

// endpoints flattens the dash-split parts of one segment into an ordered
// endpoint list. An interior part like "5pm 9pm" in "9am-5pm 9pm-1am"
// holds both the end of one range and the start of the next, so it is
// split at its midpoint.
func endpoints(parts []string) []string {
	var eps []string
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 0 || i == len(parts)-1 {
			eps = append(eps, p)
			continue
		}
		fields := strings.Fields(p)
		if len(fields) < 2 {
			eps = append(eps, p)
			continue
		}
		mid := (len(fields) + 1) / 2
		eps = append(eps, strings.Join(fields[:mid], " "), strings.Join(fields[mid:], " "))
	}
	return eps
}

// Minutes converts a canonical "HH:MM" value to minutes since midnight.
// "24:00" maps to 1440.
func Minutes(t string) (int, bool) {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return 0, false
	}
	if hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}

// SpanHours returns the duration in hours from start to end, adding a day
// when the span crosses midnight.
func SpanHours(start, end string) (float64, bool) {
	s, okStart := Minutes(start)
	e, okEnd := Minutes(end)
	if !okStart || !okEnd {
		return 0, false
	}
	d := e - s
	if d < 0 {
		d += MinutesPerDay
	}
	return float64(d) / 60, true
}

// InWindow reports whether nowMinutes falls inside [start, end). When end
// is numerically before start the window crosses midnight, and a current
// time in the early-morning tail of such a window is shifted forward a day
// before the comparison.
func InWindow(start, end string, nowMinutes int) bool {
	s, okStart := Minutes(start)
	e, okEnd := Minutes(end)
	if !okStart || !okEnd {
		return false
	}
	if e < s {
		e += MinutesPerDay
	}
	cur := nowMinutes
	if e > MinutesPerDay && cur < e-MinutesPerDay {
		cur += MinutesPerDay
	}
	return s <= cur && cur < e
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
