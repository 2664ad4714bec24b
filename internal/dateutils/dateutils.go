// Package dateutils normalizes the timestamp encodings found in audit
// payloads. Source values arrive as epoch milliseconds, epoch seconds,
// compact YYYYMMDD strings or ISO-8601 text; targets are selected per
// output field, not globally.
package dateutils

import (
	"strconv"
	"strings"
	"time"
)

// Layout constants shared by the coercers and their callers
const (
	LayoutISODate     = "2006-01-02"
	LayoutCompactDate = "20060102"
	LayoutISOOffset   = "2006-01-02T15:04:05-07:00"
)

// isoLayouts are the textual formats tried after the digit-only forms are
// ruled out. Layouts without a zone are interpreted as UTC.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	LayoutISODate,
}

// ToEpochMillis converts a timestamp in any supported source encoding to
// Unix epoch milliseconds. Unparseable input yields 0.
func ToEpochMillis(text string) int64 {
	t, ok := parseFlexible(text)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

// ToYYYYMMDDInt converts a timestamp in any supported source encoding to
// an 8-digit YYYYMMDD integer in UTC. Unparseable input yields 0.
func ToYYYYMMDDInt(text string) int {
	t, ok := parseFlexible(text)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(t.UTC().Format(LayoutCompactDate))
	if err != nil {
		return 0
	}
	return n
}

// ToISO8601UTC converts a timestamp in any supported source encoding to an
// ISO-8601 string in UTC with an explicit +00:00 offset and no sub-second
// digits. Unparseable input is returned unchanged (trimmed), so a bad date
// degrades instead of blocking the mapping.
func ToISO8601UTC(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	t, ok := parseFlexible(s)
	if !ok {
		return s
	}
	return t.UTC().Truncate(time.Second).Format(LayoutISOOffset)
}

// parseFlexible detects the source encoding and parses it. Digit-only
// strings are tried as epoch milliseconds (length >= 13, extra digits
// ignored), epoch seconds (length 10) or compact dates (length 8);
// everything else goes through the ISO layout list.
func parseFlexible(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}

	if isDigits(s) {
		switch {
		case len(s) >= 13:
			ms, err := strconv.ParseInt(s[:13], 10, 64)
			if err != nil {
				return time.Time{}, false
			}
			return time.UnixMilli(ms).UTC(), true
		case len(s) == 10:
			sec, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return time.Time{}, false
			}
			return time.Unix(sec, 0).UTC(), true
		case len(s) == 8:
			t, err := time.ParseInLocation(LayoutCompactDate, s, time.UTC)
			if err != nil {
				return time.Time{}, false
			}
			return t, true
		}
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Kolkata returns the Asia/Kolkata location used for run identifiers. When
// tzdata is unavailable it falls back to a fixed +05:30 zone.
func Kolkata() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// RunIdentifier builds the per-run output prefix "<date>-<HHMMSS>" from a
// validated date token and a wall-clock instant.
func RunIdentifier(date string, now time.Time) string {
	return date + "-" + now.In(Kolkata()).Format("150405")
}
