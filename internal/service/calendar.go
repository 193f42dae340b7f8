package service

import (
	"math"
	"time"

	"github.com/Tafhim-87/Quran-track/config"
)

// Campaign resolves calendar dates to campaign day indices.
//
// Both the configured start date and the queried date are normalized to
// midnight before taking the whole-day difference, so the result only changes
// at local midnight. Any date outside the nominal window (before the start or
// after day 30) wraps back into [1, days] with a Euclidean modulo; once the
// cycle has completed, index 1 no longer means "first real day".
type Campaign struct {
	start time.Time
	days  int
}

// NewCampaign builds the resolver from validated campaign configuration.
func NewCampaign(cfg *config.CampaignConfig) *Campaign {
	return &Campaign{start: midnightOf(cfg.Start()), days: cfg.Days}
}

// Start returns the campaign start date (midnight).
func (c *Campaign) Start() time.Time { return c.start }

// Days returns the campaign length in days.
func (c *Campaign) Days() int { return c.days }

// DayIndexAt returns the campaign day index for t, always in [1, days].
func (c *Campaign) DayIndexAt(t time.Time) int {
	// Floor keeps day boundaries stable even when a DST shift makes the
	// midnight-to-midnight distance a little under a multiple of 24h.
	diffDays := int(math.Floor(midnightOf(t).Sub(c.start).Hours() / 24))
	index := diffDays + 1
	if index < 1 || index > c.days {
		index = ((index-1)%c.days+c.days)%c.days + 1
	}
	return index
}

// midnightOf strips the time-of-day component in t's location.
func midnightOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
