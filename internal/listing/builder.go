package listing

import (
	"sort"
	"time"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// DefaultWindowDays is the size of the recent-campaigns window.
const DefaultWindowDays = 7

// Builder derives the two listing views from a campaign snapshot. Both
// derivations are pure functions of (campaigns, now): no state, same output
// for the same input, byte-for-byte.
type Builder struct {
	windowDays int
	skipEnded  bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithWindowDays overrides the recent-window size.
func WithWindowDays(days int) Option {
	return func(b *Builder) {
		if days > 0 {
			b.windowDays = days
		}
	}
}

// WithEndedFilter drops campaigns whose end date already passed. The source
// is expected to only return active campaigns, so this is a defensive
// filter, off by default.
func WithEndedFilter() Option {
	return func(b *Builder) {
		b.skipEnded = true
	}
}

// NewBuilder creates a builder with a 7-day recent window.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{windowDays: DefaultWindowDays}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WindowDays returns the configured recent-window size.
func (b *Builder) WindowDays() int {
	return b.windowDays
}

// Recent returns the campaigns that started within the window ending at
// now, boundary inclusive. Order: start date descending, then game name,
// campaign name and id ascending.
func (b *Builder) Recent(campaigns []models.Campaign, now time.Time) models.RecentView {
	window := time.Duration(b.windowDays) * 24 * time.Hour

	recent := make([]models.Campaign, 0, len(campaigns))
	for _, c := range b.active(campaigns, now) {
		if c.StartedWithin(window, now) {
			recent = append(recent, c)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return campaignLess(&recent[i], &recent[j])
	})

	return models.RecentView{
		WindowDays: b.windowDays,
		Campaigns:  recent,
	}
}

// ByGame partitions the full campaign set by game name. Groups are ordered
// by game name ascending; campaigns within a group by start date
// descending, then name and id ascending. Every input campaign lands in
// exactly one group.
func (b *Builder) ByGame(campaigns []models.Campaign, now time.Time) models.ByGameView {
	byGame := make(map[string][]models.Campaign)
	for _, c := range b.active(campaigns, now) {
		byGame[c.Game] = append(byGame[c.Game], c)
	}

	games := make([]string, 0, len(byGame))
	for game := range byGame {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool {
		return compareFold(games[i], games[j]) < 0
	})

	groups := make([]models.GameGroup, 0, len(games))
	for _, game := range games {
		grouped := byGame[game]
		sort.Slice(grouped, func(i, j int) bool {
			return campaignLess(&grouped[i], &grouped[j])
		})
		groups = append(groups, models.GameGroup{Game: game, Campaigns: grouped})
	}

	return models.ByGameView{Groups: groups}
}

// Build derives both views at once.
func (b *Builder) Build(snap models.Snapshot, now time.Time) models.Listings {
	return models.Listings{
		Now:      now,
		Recent:   b.Recent(snap.Campaigns, now),
		ByGame:   b.ByGame(snap.Campaigns, now),
		Warnings: snap.Warnings,
	}
}

func (b *Builder) active(campaigns []models.Campaign, now time.Time) []models.Campaign {
	if !b.skipEnded {
		return campaigns
	}
	active := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if !c.Ended(now) {
			active = append(active, c)
		}
	}
	return active
}

// campaignLess is the composite comparator shared by both views: start date
// descending, then game, name and id ascending. The chain makes the order a
// strict total order regardless of sort stability.
func campaignLess(a, b *models.Campaign) bool {
	if !a.StartAt.Equal(b.StartAt) {
		return a.StartAt.After(b.StartAt)
	}
	if cmp := compareFold(a.Game, b.Game); cmp != 0 {
		return cmp < 0
	}
	if cmp := compareFold(a.Name, b.Name); cmp != 0 {
		return cmp < 0
	}
	return a.ID < b.ID
}

// compareFold orders strings case-insensitively by folding ASCII upper case
// to lower case byte by byte, which is total and locale-independent. Strings
// equal under the fold fall back to a plain byte compare so the order stays
// total when names differ only in case.
func compareFold(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := foldByte(a[i]), foldByte(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	if a != b {
		if a < b {
			return -1
		}
		return 1
	}
	return 0
}

func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}
