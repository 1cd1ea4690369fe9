package reminder

import (
	"fmt"
	"strings"
	"time"
)

// timeFormats are the accepted clock formats, tried in order
var timeFormats = []string{
	"15:04",    // 24-hour
	"3:04 PM",  // 12-hour with space
	"3:04PM",   // 12-hour without space
	"15:04:05", // 24-hour with seconds
}

// ParseTime parses a clock string and optional date string into a concrete
// reminder time. Seconds are truncated to zero. With no explicit date, a
// clock time that already passed today rolls over to tomorrow.
func ParseTime(clock, date string) (time.Time, error) {
	now := time.Now()

	day := now
	explicitDate := false
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", date, err)
		}
		day = parsed
		explicitDate = true
	}

	clock = strings.TrimSpace(clock)
	var parsed time.Time
	var ok bool
	for _, format := range timeFormats {
		if p, err := time.Parse(format, strings.ToUpper(clock)); err == nil {
			parsed = p
			ok = true
			break
		}
	}
	if !ok {
		return time.Time{}, fmt.Errorf("invalid time %q (want 15:04 or 3:04 PM)", clock)
	}

	at := time.Date(day.Year(), day.Month(), day.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.Local)

	if !explicitDate && !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}

	return at, nil
}

// QuickOption is a preset reminder choice
type QuickOption struct {
	Label string
	At    time.Time
}

// QuickOptions returns the preset reminder choices that are still in the
// future relative to now.
func QuickOptions(now time.Time) []QuickOption {
	today5pm := time.Date(now.Year(), now.Month(), now.Day(), 17, 0, 0, 0, now.Location())
	tomorrow9am := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	all := []QuickOption{
		{Label: "in 5 minutes", At: now.Add(5 * time.Minute)},
		{Label: "in 15 minutes", At: now.Add(15 * time.Minute)},
		{Label: "in 30 minutes", At: now.Add(30 * time.Minute)},
		{Label: "in 1 hour", At: now.Add(1 * time.Hour)},
		{Label: "today 5pm", At: today5pm},
		{Label: "tomorrow 9am", At: tomorrow9am},
	}

	valid := make([]QuickOption, 0, len(all))
	for _, opt := range all {
		if opt.At.After(now) {
			valid = append(valid, opt)
		}
	}
	return valid
}
