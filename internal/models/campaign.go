package models

import (
	"time"
)

// Campaign is one active Twitch Drop campaign, flattened out of the nested
// API payload. Instances are built once per run by the normalizer and never
// mutated afterwards.
type Campaign struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Game    string    `json:"game"`
	StartAt time.Time `json:"start_at"`
	// EndAt is zero when the source did not report an expiry.
	EndAt   time.Time `json:"end_at,omitempty"`
	Rewards []Reward  `json:"rewards,omitempty"`
}

// Reward is a time-based drop reward earned by watching for a number of
// minutes.
type Reward struct {
	Name            string `json:"name"`
	MinutesRequired int    `json:"minutes_required"`
}

// HasEnd reports whether the campaign carries a known expiry date.
func (c *Campaign) HasEnd() bool {
	return !c.EndAt.IsZero()
}

// Ended reports whether the campaign expired before the given reference
// time. Campaigns without a known expiry never report as ended.
func (c *Campaign) Ended(now time.Time) bool {
	return c.HasEnd() && c.EndAt.Before(now)
}

// StartedWithin reports whether the campaign started inside the window
// ending at now. The boundary is inclusive: a campaign exactly window old
// still qualifies. Future-dated starts have a negative age and always
// count.
func (c *Campaign) StartedWithin(window time.Duration, now time.Time) bool {
	return now.Sub(c.StartAt) <= window
}

// Snapshot is the full set of campaigns produced from one fetch, plus the
// warnings collected while normalizing it.
type Snapshot struct {
	Campaigns []Campaign `json:"campaigns"`
	Warnings  []string   `json:"warnings,omitempty"`
}
