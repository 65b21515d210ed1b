package neo

import "time"

const (
	dateLayout = "2006-01-02"
	windowDays = 7
)

// DateRange returns the feed window starting on now's calendar date and
// ending windowDays later, both as YYYY-MM-DD.
func DateRange(now time.Time) (start, end string) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.Format(dateLayout), day.AddDate(0, 0, windowDays).Format(dateLayout)
}
