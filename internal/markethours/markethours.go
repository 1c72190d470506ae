package markethours

import (
	"fmt"
	"time"
	_ "time/tzdata" // America/New_York on hosts without a zoneinfo database
)

// Eastern is US Eastern time, DST-aware.
var Eastern = mustLoad("America/New_York")

// Regular NYSE/NASDAQ session in Eastern time.
const (
	OpenHour    = 9
	OpenMinute  = 30
	CloseHour   = 16
	CloseMinute = 0
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("markethours: load %s: %v", name, err))
	}
	return loc
}

// IsOpen returns true if t falls within the regular US session
// (9:30 AM to 4:00 PM Eastern, Mon to Fri, both ends inclusive).
func IsOpen(t time.Time) bool {
	et := t.In(Eastern)
	if !IsWeekday(et) {
		return false
	}
	return !et.Before(TodayOpen(et)) && !et.After(TodayClose(et))
}

// IsWeekday returns true if t is Mon to Fri in Eastern time.
func IsWeekday(t time.Time) bool {
	wd := t.In(Eastern).Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// TodayOpen returns the session open on t's Eastern calendar day.
func TodayOpen(t time.Time) time.Time {
	et := t.In(Eastern)
	return time.Date(et.Year(), et.Month(), et.Day(), OpenHour, OpenMinute, 0, 0, Eastern)
}

// TodayClose returns the session close on t's Eastern calendar day.
func TodayClose(t time.Time) time.Time {
	et := t.In(Eastern)
	return time.Date(et.Year(), et.Month(), et.Day(), CloseHour, CloseMinute, 0, 0, Eastern)
}

// NextOpen returns the next session open at or after t.
// Holidays are not modelled.
func NextOpen(t time.Time) time.Time {
	et := t.In(Eastern)
	open := TodayOpen(et)
	if IsWeekday(et) && !et.After(open) {
		return open
	}
	d := et
	for i := 0; i < 7; i++ {
		d = d.AddDate(0, 0, 1)
		if IsWeekday(d) {
			return TodayOpen(d)
		}
	}
	return TodayOpen(et.AddDate(0, 0, 1))
}

// TimeUntilClose returns the duration until today's close, or 0 once closed.
func TimeUntilClose(t time.Time) time.Duration {
	if !IsOpen(t) {
		return 0
	}
	return TodayClose(t).Sub(t)
}

// Status returns a human-readable market status.
func Status(t time.Time) string {
	if IsOpen(t) {
		return fmt.Sprintf("Market Open, closes in %s", fmtDur(TimeUntilClose(t)))
	}
	next := NextOpen(t)
	et := next.In(Eastern)
	return fmt.Sprintf("Market Closed, opens %s %s ET (%s)",
		et.Weekday().String()[:3], et.Format("15:04"), fmtDur(next.Sub(t)))
}

func fmtDur(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
