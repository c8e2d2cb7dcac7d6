// Package demo provides an offline calendar source so the renderer can
// be exercised without a token or network access.
package demo

import (
	"context"
	"time"

	"github.com/enikolados/sitemetrics/internal/core"
)

type Source struct {
	now func() time.Time
}

func New() *Source {
	return &Source{now: time.Now}
}

func (s *Source) Name() string {
	return "demo"
}

// Fetch builds a synthetic year of contributions ending today. The
// counts follow a fixed arithmetic pattern, so two runs on the same day
// produce identical calendars.
func (s *Source) Fetch(ctx context.Context, login string) (core.ContributionCalendar, error) {
	today := s.now().UTC()
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	// Start on the Sunday 52 weeks back so columns align.
	start := end.AddDate(0, 0, -364)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	cal := core.ContributionCalendar{}
	week := core.ContributionWeek{}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := int(d.Sub(start).Hours() / 24)
		count := (day * day) % 13
		if day%5 == 0 {
			count = 0
		}
		cal.Total += count
		week.Days = append(week.Days, core.ContributionDay{Date: d, Count: count})

		if d.Weekday() == time.Saturday {
			cal.Weeks = append(cal.Weeks, week)
			week = core.ContributionWeek{}
		}
	}
	if len(week.Days) > 0 {
		cal.Weeks = append(cal.Weeks, week)
	}

	return cal, nil
}
