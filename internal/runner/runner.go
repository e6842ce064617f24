package runner

import (
	"bytes"
	"context"
	"time"

	"github.com/go-kit/log"

	"github.com/43mm/twitch-drops-list/internal/publish"
	"github.com/43mm/twitch-drops-list/internal/render"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// Runner drives complete pipeline runs: derive listings at the current
// time, render the document and hand it to the publisher. Each run is a
// full stateless recomputation.
type Runner struct {
	service   service.DropsService
	renderer  *render.MarkdownRenderer
	publisher publish.Publisher
	clock     func() time.Time
	logger    log.Logger
}

// New creates a runner. A nil clock defaults to time.Now.
func New(svc service.DropsService, renderer *render.MarkdownRenderer, publisher publish.Publisher, clock func() time.Time, logger log.Logger) *Runner {
	if clock == nil {
		clock = time.Now
	}
	return &Runner{
		service:   svc,
		renderer:  renderer,
		publisher: publisher,
		clock:     clock,
		logger:    logger,
	}
}

// RunOnce executes one full pipeline run. Nothing is published unless both
// listing derivation and rendering succeed, so a failed run leaves any
// previous output untouched.
func (r *Runner) RunOnce(ctx context.Context) error {
	now := r.clock()

	listings, err := r.service.GetListings(ctx, now)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.renderer.Render(&buf, listings); err != nil {
		return err
	}

	return r.publisher.Publish(buf.Bytes())
}

// Run executes the pipeline once per period until the context is canceled.
// A failed cycle is logged and the next one still runs.
func (r *Runner) Run(ctx context.Context, period time.Duration) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	if err := r.RunOnce(ctx); err != nil {
		r.logger.Log("msg", "listing run failed", "err", err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RunOnce(ctx); err != nil {
				r.logger.Log("msg", "listing run failed", "err", err.Error())
			}
		}
	}
}
