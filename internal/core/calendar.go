package core

import (
	"fmt"
	"time"
)

// MinWeeks is the smallest number of weeks a fetched calendar may carry.
// The contributions API returns roughly a year (~53 weeks); anything
// shorter than this indicates a truncated or wrong-shaped payload.
const MinWeeks = 4

type ContributionDay struct {
	Date  time.Time
	Count int
}

type ContributionWeek struct {
	Days []ContributionDay
}

type ContributionCalendar struct {
	Total int
	Weeks []ContributionWeek
}

// Counts flattens the calendar into the raw daily counts, in week order.
func (c ContributionCalendar) Counts() []int {
	var counts []int
	for _, w := range c.Weeks {
		for _, d := range w.Days {
			counts = append(counts, d.Count)
		}
	}
	return counts
}

// DayCount returns the number of days present across all weeks.
func (c ContributionCalendar) DayCount() int {
	var n int
	for _, w := range c.Weeks {
		n += len(w.Days)
	}
	return n
}

// Validate rejects calendars that cannot have come from a well-formed
// contributions response. Rendering must not be attempted on a calendar
// that fails validation.
func (c ContributionCalendar) Validate() error {
	if c.Total < 0 {
		return fmt.Errorf("calendar: negative total %d", c.Total)
	}
	if len(c.Weeks) < MinWeeks {
		return fmt.Errorf("calendar: got %d weeks, want at least %d", len(c.Weeks), MinWeeks)
	}
	for i, w := range c.Weeks {
		if len(w.Days) == 0 {
			return fmt.Errorf("calendar: week %d has no days", i)
		}
		if len(w.Days) > 7 {
			return fmt.Errorf("calendar: week %d has %d days", i, len(w.Days))
		}
		for j, d := range w.Days {
			if d.Count < 0 {
				return fmt.Errorf("calendar: week %d day %d has negative count %d", i, j, d.Count)
			}
			if d.Date.IsZero() {
				return fmt.Errorf("calendar: week %d day %d has no date", i, j)
			}
		}
	}
	return nil
}
