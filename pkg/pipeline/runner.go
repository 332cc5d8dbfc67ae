package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/schneegans/sponsorwall/pkg/avatar"
	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/observability"
	"github.com/schneegans/sponsorwall/pkg/render"
	"github.com/schneegans/sponsorwall/pkg/report"
	"github.com/schneegans/sponsorwall/pkg/source"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// Runner executes actions. Avatars are fetched through a per-runner memo, so
// every reference is downloaded at most once across all documents.
type Runner struct {
	Fetcher avatar.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner. If f is nil, a SourceFetcher without byte
// cache is used.
func NewRunner(f avatar.Fetcher, logger *log.Logger) *Runner {
	if f == nil {
		f = avatar.NewSourceFetcher(avatar.FetchOptions{})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Fetcher: avatar.NewMemoFetcher(f), Logger: logger}
}

// Run executes the requested actions in ActionOrder, writing the text
// reports to w. With no actions it does nothing.
func (r *Runner) Run(ctx context.Context, actions []Action, w io.Writer, opts Options) (*Result, error) {
	result := &Result{}
	actions = ordered(actions)
	if len(actions) == 0 {
		return result, nil
	}

	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = time.Since(start)
	for _, p := range ds.Platforms {
		if p.Found {
			result.Stats.Platforms++
		}
	}

	merged := sponsor.Merge(ds.Sponsors(), opts.Aliases)
	result.Sponsors = merged
	result.Stats.Sponsors = len(merged)

	now := opts.Now()
	ledgers := ds.Ledgers()

	for _, a := range actions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch a {
		case ActionSVG:
			start := time.Now()
			written, err := r.WriteSVGs(ctx, merged, opts)
			if err != nil {
				return nil, err
			}
			result.Written = written
			result.Stats.RenderTime = time.Since(start)
		case ActionGraph:
			err = report.WriteMonthly(w, ledgers.Monthly(opts.SeriesStart, now))
		case ActionDonors:
			err = report.WriteDonors(w, merged)
		case ActionPlatforms:
			err = report.WritePlatforms(w, ds.Platforms)
		case ActionWeekly:
			err = report.WriteInt(w, ledgers.WeeklyAverage(now, opts.Weeks))
		case ActionTotal:
			err = report.WriteInt(w, ledgers.AllTime(opts.AllTimeStart))
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "write %s report", a)
		}
	}
	return result, nil
}

// Load reads all platform exports from the data directory.
func (r *Runner) Load(ctx context.Context, opts Options) (*source.Dataset, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	ds, err := source.Load(ctx, opts.DataDir, opts.sourceOptions())
	if err != nil {
		return nil, err
	}
	opts.Logger.Info("loaded exports", "dir", opts.DataDir, "sponsors", len(ds.Sponsors()))
	return ds, nil
}

// WriteSVGs renders every document variant of sponsors into the output
// directory and returns the written paths. Avatars are prefetched in
// parallel; rendering itself is sequential, so output only depends on the
// order of sponsors.
func (r *Runner) WriteSVGs(ctx context.Context, sponsors sponsor.Records, opts Options) ([]string, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := sponsors.Validate(); err != nil {
		return nil, err
	}
	if err := avatar.Prefetch(ctx, r.Fetcher, sponsors, opts.Parallel, opts.Logger); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create output directory %s", opts.OutputDir)
	}

	renderer := avatar.NewRenderer(r.Fetcher, opts.Badges, opts.Tiers, avatar.WithLogger(opts.Logger))
	avatarFn := func(rec sponsor.Record, size int) (string, error) {
		return renderer.Render(ctx, rec, size)
	}

	for _, s := range sponsors {
		opts.Logger.Debug("sponsor", "name", s.Name, "total", s.Total)
	}

	written := make([]string, 0, len(render.Variants))
	for _, v := range render.Variants {
		path := filepath.Join(opts.OutputDir, v.File)
		svg, err := v.Render(sponsors, avatarFn, render.WithTiers(opts.Tiers, opts.Styles))
		if err == nil {
			err = os.WriteFile(path, svg, 0o644)
		}
		observability.Pipeline().OnDocumentWritten(ctx, path, len(sponsors), err)
		if err != nil {
			if errors.GetCode(err) == "" {
				err = errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
			}
			return nil, err
		}
		opts.Logger.Info("generated document", "file", path, "kind", v.Kind, "theme", v.Theme)
		written = append(written, path)
	}
	return written, nil
}
