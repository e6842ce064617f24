package models

// Raw types mirror the drops API payload: an array of games, each carrying
// its active drop campaigns, each carrying time-based rewards. Fields are
// kept loose (strings, no parsed dates) so the normalizer owns all
// validation.

// RawGame is one game entry from the API response.
type RawGame struct {
	GameDisplayName string    `json:"gameDisplayName"`
	Drops           []RawDrop `json:"rewards"`
}

// RawDrop is one drop campaign as returned by the API. StartAt and EndAt
// are left as strings until the normalizer parses them.
type RawDrop struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	StartAt string      `json:"startAt"`
	EndAt   string      `json:"endAt"`
	Rewards []RawReward `json:"timeBasedDrops"`
}

// RawReward is one time-based reward within a drop campaign.
type RawReward struct {
	Name            string `json:"name"`
	MinutesRequired int    `json:"requiredMinutesWatched"`
}
