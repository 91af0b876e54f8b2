package domain

import (
	"fmt"
	"time"
)

// ReportingWindow is the Sunday-to-Saturday week a digest covers.
// Start is inclusive and End exclusive; End is always Start plus seven days.
type ReportingWindow struct {
	Start time.Time
	End   time.Time
}

// CurrentWindow derives the most recently completed Sunday-to-Saturday week
// in the given location. The window start is the last Sunday strictly before
// today; on a Sunday the window rolls back a full week, so "today" is never
// part of the report.
func CurrentWindow(loc *time.Location) ReportingWindow {
	now := clock.Now().In(loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	back := int(today.Weekday())
	if back == 0 {
		back = 7
	}

	start := today.AddDate(0, 0, -back)
	return ReportingWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

// Subject renders the digest email subject for this window, e.g.
// "Summary of Local Updates - Week of March 3, 2024". The day is never
// zero-padded.
func (w ReportingWindow) Subject() string {
	return fmt.Sprintf("Summary of Local Updates - Week of %s", w.Start.Format("January 2, 2006"))
}
