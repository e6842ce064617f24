package models

import "time"

// RecentView lists the campaigns that started within the recent window,
// already ordered: start date descending, then game, name and id ascending.
type RecentView struct {
	WindowDays int        `json:"window_days"`
	Campaigns  []Campaign `json:"campaigns"`
}

// GameGroup is one game heading in the by-game view with its campaigns
// ordered start date descending, then name and id ascending.
type GameGroup struct {
	Game      string     `json:"game"`
	Campaigns []Campaign `json:"campaigns"`
}

// ByGameView lists every active campaign grouped by game, groups ordered by
// game name ascending.
type ByGameView struct {
	Groups []GameGroup `json:"groups"`
}

// Listings bundles the two derived views of one snapshot together with the
// reference time they were derived at.
type Listings struct {
	Now      time.Time  `json:"now"`
	Recent   RecentView `json:"recent"`
	ByGame   ByGameView `json:"by_game"`
	Warnings []string   `json:"warnings,omitempty"`
}
