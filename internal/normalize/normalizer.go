package normalize

import (
	"fmt"
	"time"

	"github.com/go-kit/log"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// NormalizationError describes why a single raw record was rejected. It is
// recovered locally: the record is skipped and the run continues.
type NormalizationError struct {
	Game   string
	DropID string
	Field  string
	Err    error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %q (game %q): invalid %s: %v", e.DropID, e.Game, e.Field, e.Err)
	}
	return fmt.Sprintf("record %q (game %q): missing %s", e.DropID, e.Game, e.Field)
}

func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// Normalizer validates raw API records and converts them into Campaign
// values.
type Normalizer struct {
	logger log.Logger
}

// New creates a normalizer that logs one warning per skipped record.
func New(logger log.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Snapshot flattens the nested game payload into a campaign snapshot.
// Invalid records are skipped, never fatal: one malformed entry must not
// take down the whole listing. Each skip is logged and carried in the
// snapshot's warning summary.
func (n *Normalizer) Snapshot(games []models.RawGame) models.Snapshot {
	var snap models.Snapshot
	for _, game := range games {
		for _, drop := range game.Drops {
			campaign, err := n.Normalize(game.GameDisplayName, drop)
			if err != nil {
				n.logger.Log("msg", "skipping malformed record", "err", err.Error())
				snap.Warnings = append(snap.Warnings, err.Error())
				continue
			}
			snap.Campaigns = append(snap.Campaigns, campaign)
		}
	}
	return snap
}

// Normalize validates one raw drop record and builds the immutable Campaign
// for it.
func (n *Normalizer) Normalize(game string, raw models.RawDrop) (models.Campaign, error) {
	if game == "" {
		return models.Campaign{}, &NormalizationError{DropID: raw.ID, Field: "game name"}
	}
	if raw.ID == "" {
		return models.Campaign{}, &NormalizationError{Game: game, Field: "id"}
	}
	if raw.Name == "" {
		return models.Campaign{}, &NormalizationError{Game: game, DropID: raw.ID, Field: "name"}
	}
	if raw.StartAt == "" {
		return models.Campaign{}, &NormalizationError{Game: game, DropID: raw.ID, Field: "start date"}
	}

	startAt, err := time.Parse(time.RFC3339, raw.StartAt)
	if err != nil {
		return models.Campaign{}, &NormalizationError{Game: game, DropID: raw.ID, Field: "start date", Err: err}
	}

	// End date is optional; when present it must parse and not precede the
	// start date.
	var endAt time.Time
	if raw.EndAt != "" {
		endAt, err = time.Parse(time.RFC3339, raw.EndAt)
		if err != nil {
			return models.Campaign{}, &NormalizationError{Game: game, DropID: raw.ID, Field: "end date", Err: err}
		}
		if endAt.Before(startAt) {
			return models.Campaign{}, &NormalizationError{
				Game: game, DropID: raw.ID, Field: "end date",
				Err: fmt.Errorf("ends %s before start %s", endAt.Format(time.RFC3339), startAt.Format(time.RFC3339)),
			}
		}
	}

	campaign := models.Campaign{
		ID:      raw.ID,
		Name:    raw.Name,
		Game:    game,
		StartAt: startAt.UTC(),
	}
	if !endAt.IsZero() {
		campaign.EndAt = endAt.UTC()
	}
	for _, reward := range raw.Rewards {
		if reward.Name == "" {
			continue
		}
		campaign.Rewards = append(campaign.Rewards, models.Reward{
			Name:            reward.Name,
			MinutesRequired: reward.MinutesRequired,
		})
	}

	return campaign, nil
}
