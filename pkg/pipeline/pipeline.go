package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"shotpair/internal/dualcapture"
	"shotpair/pkg/capture"
	"shotpair/pkg/checkpoint"
	"shotpair/pkg/composite"
	"shotpair/pkg/config"
	apperrors "shotpair/pkg/errors"
	"shotpair/pkg/input"
	"shotpair/pkg/logger"
	"shotpair/pkg/models"
	"shotpair/pkg/naming"
	"shotpair/pkg/ratelimit"
	"shotpair/pkg/storage"
)

// Pipeline processes the pairs of one input file
type Pipeline struct {
	cfg          *config.Config
	capturer     dualcapture.Capturer
	placeholders *capture.Service
	reporter     Reporter
	logger       logger.Logger
	limiter      ratelimit.Limiter
	leftHeaders  map[string]string
	rightHeaders map[string]string
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithCapturer replaces the headless Chrome capturer
func WithCapturer(c dualcapture.Capturer) Option {
	return func(p *Pipeline) { p.capturer = c }
}

// WithReporter sets the progress reporter
func WithReporter(r Reporter) Option {
	return func(p *Pipeline) { p.reporter = r }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithLimiter replaces the limiter derived from capture.pairs_per_minute
func WithLimiter(l ratelimit.Limiter) Option {
	return func(p *Pipeline) { p.limiter = l }
}

// WithHeaders sets extra request headers for each environment
func WithHeaders(left, right map[string]string) Option {
	return func(p *Pipeline) {
		p.leftHeaders = left
		p.rightHeaders = right
	}
}

// New creates a Pipeline for cfg
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		reporter: NopReporter{},
		logger:   logger.GetLogger(),
		limiter:  ratelimit.PerMinute(cfg.Capture.PairsPerMinute),
	}
	for _, opt := range opts {
		opt(p)
	}

	serviceOpts := []capture.Option{
		capture.WithLogger(p.logger),
		capture.WithPlaceholderSize(cfg.Placeholder.Width, cfg.Placeholder.Height),
	}
	p.placeholders = capture.NewService(nil, serviceOpts...)
	if p.capturer == nil {
		renderer := capture.NewChromeRenderer(capture.ChromeOptionsFromConfig(cfg.Capture), p.logger)
		p.capturer = capture.NewService(renderer, serviceOpts...)
	}
	return p
}

// Run processes every pair not yet in the record log. The returned summary
// is non-nil even when Run fails. Cancelling ctx stops the run between
// pairs; a pair interrupted mid-capture is not recorded.
func (p *Pipeline) Run(ctx context.Context) (summary *models.Summary, err error) {
	start := time.Now()
	summary = &models.Summary{RunID: uuid.NewString()}
	log := p.logger.WithField("run_id", summary.RunID)

	defer func() {
		summary.Duration = time.Since(start)
		p.reporter.RunFinished(summary)
		fields := map[string]interface{}{
			"total":           summary.Total,
			"processed":       summary.Processed,
			"skipped":         summary.Skipped,
			"failed_captures": summary.FailedCaptures,
			"duration":        summary.Duration,
		}
		if err != nil {
			log.WithError(err).ErrorWithFields("Run stopped", fields)
			return
		}
		log.InfoWithFields("Run complete", fields)
	}()

	pairs, err := input.ReadFile(p.cfg.Files.Input)
	if err != nil {
		return summary, err
	}
	summary.Total = len(pairs)
	padding := naming.PaddingLength(len(pairs))

	store, err := checkpoint.Open(p.cfg.Files.RecordLog, log)
	if err != nil {
		return summary, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = apperrors.ProgressStore("close record log", cerr)
		}
	}()

	// The output directory is only touched while the record log lock is held
	out, err := storage.NewManager(p.cfg.Files.OutputDir)
	if err != nil {
		return summary, apperrors.Composite("prepare output directory", err)
	}

	if orphans := out.Orphans(store.IsDone); len(orphans) > 0 {
		log.WarnWithFields("Images without a record will be recaptured", map[string]interface{}{
			"count": len(orphans),
			"files": orphans,
		})
	}

	log.InfoWithFields("Run started", map[string]interface{}{
		"pairs":      len(pairs),
		"completed":  store.Completed(),
		"left":       p.cfg.Environments.Left.BaseURL,
		"right":      p.cfg.Environments.Right.BaseURL,
		"output_dir": out.GetOutputDir(),
	})
	p.reporter.RunStarted(len(pairs), padding)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		name := naming.FileName(pair.Index, pair.LeftPath, padding)
		plog := log.WithFields(map[string]interface{}{"pair": pair.Index, "file": name})

		if store.IsDone(name) {
			summary.Skipped++
			plog.Debug("Skipping completed pair")
			p.reporter.PairSkipped(pair, name)
			continue
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return summary, err
		}

		p.reporter.PairStarted(pair, name)
		plog.InfoWithFields("Processing pair", map[string]interface{}{
			"left_path":  pair.LeftPath,
			"right_path": pair.RightPath,
		})

		rec, res, err := p.processPair(ctx, pair, name, out, store)
		if err != nil {
			p.reporter.PairAborted(pair, err)
			return summary, err
		}

		summary.Processed++
		summary.FailedCaptures += res.FailedCaptures()
		plog.InfoWithFields("Pair complete", map[string]interface{}{
			"left_status":     rec.LeftStatus,
			"right_status":    rec.RightStatus,
			"failed_captures": res.FailedCaptures(),
			"capture_time":    res.Duration,
		})
		p.reporter.PairDone(pair, rec, res.FailedCaptures())
	}

	return summary, nil
}

func (p *Pipeline) processPair(
	ctx context.Context,
	pair models.PagePair,
	name string,
	out *storage.Manager,
	store *checkpoint.Store,
) (models.OutputRecord, dualcapture.Result, error) {
	res := dualcapture.Run(ctx,
		p.side(pair.LeftPath, p.cfg.Environments.Left, p.leftHeaders),
		p.side(pair.RightPath, p.cfg.Environments.Right, p.rightHeaders),
	)
	if err := ctx.Err(); err != nil {
		return models.OutputRecord{}, res, err
	}

	img, err := composite.ComposePNG(res.Left.Image, res.Right.Image)
	if err != nil {
		return models.OutputRecord{}, res, apperrors.Composite("compose "+name, err)
	}
	if err := out.WriteImage(name, img); err != nil {
		return models.OutputRecord{}, res, apperrors.Composite("write "+name, err)
	}

	rec := models.OutputRecord{
		Index:          pair.Index,
		LeftURL:        pair.LeftPath,
		RightURL:       pair.RightPath,
		OutputFileName: name,
		LeftStatus:     res.Left.Status,
		RightStatus:    res.Right.Status,
	}
	if err := store.Append(rec); err != nil {
		return rec, res, err
	}
	return rec, res, nil
}

// side builds the capture for one environment. A path that cannot be
// resolved against the base URL becomes a failed capture.
func (p *Pipeline) side(path string, env config.EnvironmentConfig, headers map[string]string) dualcapture.CaptureFunc {
	target, err := input.Resolve(env.BaseURL, path)
	if err != nil {
		return dualcapture.Preset(p.placeholders.Fail(path, err))
	}
	return dualcapture.Request(p.capturer, capture.Request{URL: target, Headers: headers})
}
