package providers

import (
	"context"

	"github.com/enikolados/sitemetrics/internal/core"
	"github.com/enikolados/sitemetrics/internal/scholar"
)

// A CalendarSource produces one contribution calendar per invocation.
type CalendarSource interface {
	Name() string
	Fetch(ctx context.Context, login string) (core.ContributionCalendar, error)
}

// A MetricsSource produces a citation metrics record for an author.
type MetricsSource interface {
	Name() string
	Fetch(ctx context.Context, authorName string) (scholar.Metrics, error)
}
