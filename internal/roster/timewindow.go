package roster

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02" // YYYY-MM-DD
	TimeLayout = "15:04"      // HH:MM
)

// Window is a half-open instant range [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// MinutesOverlap returns the whole minutes shared by [aStart, aEnd) and
// [bStart, bEnd). Disjoint or inverted intervals give 0.
func MinutesOverlap(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// WeekWindow returns the week containing ref, starting at midnight of the
// weekStartsOn day in ref's location and lasting seven calendar days.
func WeekWindow(ref time.Time, weekStartsOn time.Weekday) Window {
	offset := (int(ref.Weekday()) - int(weekStartsOn) + 7) % 7
	start := time.Date(ref.Year(), ref.Month(), ref.Day()-offset, 0, 0, 0, 0, ref.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 7)}
}

// SameLocalDay compares calendar dates, ignoring time of day.
func SameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseWeekday accepts "monday" or "sunday" (any case).
func ParseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "monday", "mon":
		return time.Monday, nil
	case "sunday", "sun":
		return time.Sunday, nil
	}
	return time.Monday, fmt.Errorf("unsupported week start %q, use monday or sunday", s)
}

// combine joins a YYYY-MM-DD date and an HH:MM time in loc.
func combine(date, clock string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, strings.TrimSpace(date)+" "+strings.TrimSpace(clock), loc)
}

// FormatHM renders "13:30" as "1:30 PM". Empty input renders as "-".
func FormatHM(clock string) string {
	if clock == "" {
		return "-"
	}
	hour, minute, ok := strings.Cut(clock, ":")
	if !ok {
		return clock
	}
	h, err := strconv.Atoi(hour)
	if err != nil {
		return clock
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h = h % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, minute, ampm)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
