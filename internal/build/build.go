// Package build sequences the site build pipeline: prepare the output tree,
// render all documents, write the rendered files, copy theme assets, and
// emit the feed. The three middle phases fan out over the parallel executor
// and aggregate sibling failures; any phase failure aborts the phases after
// it.
package build

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/feed"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
	"git.home.luguber.info/inful/sitebuilder/internal/render"
	"git.home.luguber.info/inful/sitebuilder/internal/site"
)

// Phase names the pipeline phases in execution order.
type Phase string

const (
	PhasePrepare    Phase = "prepare"
	PhaseRender     Phase = "render"
	PhaseWrite      Phase = "write"
	PhaseCopyAssets Phase = "copy_assets"
	PhaseFeed       Phase = "feed"
)

// phaseDef pairs a phase with its implementation.
type phaseDef struct {
	Name Phase
	Fn   func(ctx context.Context, st *state) error
}

// state carries intermediate artifacts between phases of one run.
type state struct {
	rendered    []site.File
	feedWritten bool
}

// Builder executes the build pipeline for one site.
type Builder struct {
	site        *site.Site
	renderer    *render.Renderer
	feed        feed.Renderer
	recorder    metrics.Recorder
	concurrency int
}

// Option configures a Builder.
type Option func(*Builder)

// WithEngine injects the template engine used for page rendering.
func WithEngine(e render.Engine) Option {
	return func(b *Builder) { b.renderer = render.NewRenderer(e) }
}

// WithFeedRenderer injects the feed renderer.
func WithFeedRenderer(r feed.Renderer) Option {
	return func(b *Builder) { b.feed = r }
}

// WithRecorder injects the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithConcurrency bounds the worker count of each parallel phase,
// overriding the site configuration. 0 means one worker per item.
func WithConcurrency(n int) Option {
	return func(b *Builder) { b.concurrency = n }
}

// New creates a Builder for the given site.
func New(s *site.Site, opts ...Option) *Builder {
	b := &Builder{
		site:        s,
		renderer:    render.NewRenderer(nil),
		feed:        feed.RSS{},
		recorder:    metrics.NoopRecorder{},
		concurrency: s.Config.Build.Concurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Report summarizes one build run.
type Report struct {
	BuildID        string
	OutputDir      string
	PhaseDurations map[Phase]time.Duration
	PhaseResults   map[Phase]metrics.ResultLabel
	PagesRendered  int
	AssetsCopied   int
	FeedWritten    bool
	Duration       time.Duration
}

// Run executes the pipeline phases strictly in sequence, stopping at the
// first phase that fails. Output files written by phases that already
// completed stay on disk; there is no rollback.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		BuildID:        uuid.NewString(),
		OutputDir:      b.site.Config.Output.Directory,
		PhaseDurations: make(map[Phase]time.Duration),
		PhaseResults:   make(map[Phase]metrics.ResultLabel),
	}
	log := slog.With(slog.String("build_id", report.BuildID))

	phases := []phaseDef{
		{PhasePrepare, b.prepare},
		{PhaseRender, b.renderAll},
		{PhaseWrite, b.writeAll},
		{PhaseCopyAssets, b.copyAssets},
		{PhaseFeed, b.writeFeed},
	}

	st := &state{}
	start := time.Now()

	for _, ph := range phases {
		select {
		case <-ctx.Done():
			report.PhaseResults[ph.Name] = metrics.ResultSkipped
			b.finish(report, start, "canceled")
			return report, errors.Wrap(ctx.Err(), errors.CategoryInternal, errors.SeverityFatal, "build canceled")
		default:
		}

		t0 := time.Now()
		err := ph.Fn(ctx, st)
		dur := time.Since(t0)

		report.PhaseDurations[ph.Name] = dur
		b.recorder.ObservePhaseDuration(string(ph.Name), dur)

		if err != nil {
			report.PhaseResults[ph.Name] = metrics.ResultFatal
			b.recorder.IncPhaseResult(string(ph.Name), metrics.ResultFatal)
			log.Error("Build phase failed", slog.String("phase", string(ph.Name)), "error", err)
			b.finish(report, start, "failed")
			return report, err
		}

		report.PhaseResults[ph.Name] = metrics.ResultSuccess
		b.recorder.IncPhaseResult(string(ph.Name), metrics.ResultSuccess)
		log.Debug("Build phase completed", slog.String("phase", string(ph.Name)), slog.Duration("duration", dur))
	}

	report.PagesRendered = len(st.rendered)
	report.AssetsCopied = len(b.site.Theme.Assets)
	report.FeedWritten = st.feedWritten
	b.recorder.AddPagesRendered(report.PagesRendered)
	b.recorder.AddAssetsCopied(report.AssetsCopied)

	b.finish(report, start, "success")
	log.Info("Site built",
		slog.Int("pages", report.PagesRendered),
		slog.Int("assets", report.AssetsCopied),
		slog.Bool("feed", report.FeedWritten),
		slog.Duration("duration", report.Duration))
	return report, nil
}

func (b *Builder) finish(report *Report, start time.Time, outcome string) {
	report.Duration = time.Since(start)
	b.recorder.ObserveBuildDuration(report.Duration)
	b.recorder.IncBuildOutcome(outcome)
}
