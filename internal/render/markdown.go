package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// RenderError wraps a failure to write rendered output. Given valid views
// it only happens on I/O errors and is fatal to the run.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering listing: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// MarkdownRenderer serializes listing views into the markdown document
// format. Output is line-oriented and byte-identical for equal input.
type MarkdownRenderer struct{}

// NewMarkdown creates a markdown renderer.
func NewMarkdown() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render writes the full document: header, recent section, by-game section.
func (r *MarkdownRenderer) Render(w io.Writer, listings models.Listings) error {
	ew := &errWriter{w: w}

	ew.printf("# Twitch Drops Campaigns\n\n")

	if len(listings.ByGame.Groups) == 0 {
		ew.printf("No active drops campaigns found.\n")
		return ew.result()
	}

	r.renderRecent(ew, listings.Recent, listings.Now)
	r.renderByGame(ew, listings.ByGame, listings.Now)
	return ew.result()
}

// RenderRecent writes only the recent-campaigns section.
func (r *MarkdownRenderer) RenderRecent(w io.Writer, view models.RecentView, now time.Time) error {
	ew := &errWriter{w: w}
	r.renderRecent(ew, view, now)
	return ew.result()
}

// RenderByGame writes only the by-game section.
func (r *MarkdownRenderer) RenderByGame(w io.Writer, view models.ByGameView, now time.Time) error {
	ew := &errWriter{w: w}
	r.renderByGame(ew, view, now)
	return ew.result()
}

// renderRecent emits one line per campaign: start date, escaped name, game
// and expiry. The view is already in final order.
func (r *MarkdownRenderer) renderRecent(ew *errWriter, view models.RecentView, now time.Time) {
	ew.printf("## Recent Drops\n\n")

	if len(view.Campaigns) == 0 {
		ew.printf("No drop campaigns started in the last %d days.\n\n", view.WindowDays)
		return
	}

	for i := range view.Campaigns {
		c := &view.Campaigns[i]
		ew.printf("- %s %s (%s)\n", c.StartAt.Format("2006-01-02"), escapeMarkdown(c.Name), recentDetail(c, now))
	}
	ew.printf("\n")
}

// renderByGame emits one game heading per group followed by its campaigns
// and their rewards.
func (r *MarkdownRenderer) renderByGame(ew *errWriter, view models.ByGameView, now time.Time) {
	ew.printf("## All Drops\n\n")

	for _, group := range view.Groups {
		ew.printf("%s\n", escapeMarkdown(group.Game))
		for i := range group.Campaigns {
			c := &group.Campaigns[i]
			ew.printf("- %s (%s)\n", escapeMarkdown(c.Name), endsIn(c, now))
			for _, reward := range c.Rewards {
				ew.printf("  - %s (%d minutes watched)\n", escapeMarkdown(reward.Name), reward.MinutesRequired)
			}
		}
		ew.printf("\n")
	}
}

// recentDetail pairs the game name with the expiry phrase for the flat
// recent listing.
func recentDetail(c *models.Campaign, now time.Time) string {
	if !c.HasEnd() {
		return escapeMarkdown(c.Game)
	}
	return fmt.Sprintf("%s, %s", escapeMarkdown(c.Game), endsIn(c, now))
}

// endsIn formats the days until the campaign's end date as a human-readable
// phrase.
func endsIn(c *models.Campaign, now time.Time) string {
	if !c.HasEnd() {
		return "no end date"
	}
	days := int(c.EndAt.Sub(now).Hours() / 24)
	if c.EndAt.Before(now) {
		return "already ended"
	}
	switch days {
	case 0:
		return "ends today"
	case 1:
		return "ends tomorrow"
	default:
		return fmt.Sprintf("ends in %d days", days)
	}
}

// escapeMarkdown escapes markdown special characters in display names.
func escapeMarkdown(text string) string {
	var escaped strings.Builder
	escaped.Grow(len(text))
	for _, c := range text {
		switch c {
		case '\\', '`', '*', '_', '{', '}', '[', ']', '(', ')', '#', '+', '-', '.', '!', '|', '<', '>', '~':
			escaped.WriteByte('\\')
		}
		escaped.WriteRune(c)
	}
	return escaped.String()
}

// errWriter defers write error handling to the end of rendering.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) result() error {
	if ew.err != nil {
		return &RenderError{Err: ew.err}
	}
	return nil
}
