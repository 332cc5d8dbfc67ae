// Package pipeline runs the sponsorwall actions: load the platform exports,
// merge sponsors, render the avatar walls and print income summaries.
//
// # Actions
//
// Each CLI flag maps to one [Action]. Several actions may be requested at
// once; they always run in [ActionOrder] and share one loaded dataset:
//
//  1. svg: write the five SVG documents into the output directory
//  2. graph: monthly income series as CSV
//  3. donors: merged donor list as CSV
//  4. platforms: per-platform totals as CSV
//  5. weekly: average weekly income over the last weeks
//  6. total: all-time income
//
// # Usage
//
//	runner := pipeline.NewRunner(fetcher, logger)
//	opts := pipeline.OptionsFromConfig(cfg)
//	result, err := runner.Run(ctx, []pipeline.Action{pipeline.ActionSVG}, os.Stdout, opts)
package pipeline

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/schneegans/sponsorwall/pkg/config"
	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/render"
	"github.com/schneegans/sponsorwall/pkg/source"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
	"github.com/schneegans/sponsorwall/pkg/tier"
)

// =============================================================================
// Actions
// =============================================================================

// Action is one output the runner can produce.
type Action string

const (
	ActionSVG       Action = "svg"
	ActionGraph     Action = "graph"
	ActionDonors    Action = "donors"
	ActionPlatforms Action = "platforms"
	ActionWeekly    Action = "weekly"
	ActionTotal     Action = "total"
)

// ActionOrder is the execution order when several actions are requested.
var ActionOrder = []Action{ActionSVG, ActionGraph, ActionDonors, ActionPlatforms, ActionWeekly, ActionTotal}

// ordered returns the requested actions in ActionOrder without duplicates.
func ordered(actions []Action) []Action {
	want := map[Action]bool{}
	for _, a := range actions {
		want[a] = true
	}
	var out []Action
	for _, a := range ActionOrder {
		if want[a] {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// Options
// =============================================================================

// Options configures a run.
type Options struct {
	DataDir   string
	BadgeDir  string
	OutputDir string

	Operator      string
	AnonymousName string
	Aliases       sponsor.AliasTable

	Tiers  tier.Table
	Styles render.TierStyles

	SeriesStart  time.Time
	AllTimeStart time.Time
	Weeks        int

	// Parallel bounds concurrent avatar fetches.
	Parallel int

	// Badges overrides the badge directory. Used by tests.
	Badges fs.FS

	// Now is the reference time of the income reports. Defaults to time.Now.
	Now func() time.Time

	Logger *log.Logger

	validated bool
}

// OptionsFromConfig maps the loaded configuration onto run options.
func OptionsFromConfig(c *config.Config) Options {
	return Options{
		DataDir:       c.DataDir,
		BadgeDir:      c.BadgeDir,
		OutputDir:     c.OutputDir,
		Operator:      c.Operator,
		AnonymousName: c.AnonymousName,
		Aliases:       c.Aliases,
		SeriesStart:   c.SeriesStart.Time,
		AllTimeStart:  c.AllTimeStart.Time,
		Weeks:         c.WeeklyWeeks,
		Parallel:      c.Fetch.Parallel,
	}
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DataDir == "" {
		return errors.New(errors.ErrCodeInvalidInput, "data directory is required")
	}
	if o.OutputDir == "" {
		o.OutputDir = "www"
	}
	if o.BadgeDir == "" {
		o.BadgeDir = "img"
	}
	if o.Tiers == nil {
		o.Tiers = tier.Default
	}
	if err := o.Tiers.Validate(); err != nil {
		return err
	}
	if o.Styles == nil {
		o.Styles = render.DefaultTierStyles
	}
	if err := o.Styles.Validate(o.Tiers); err != nil {
		return err
	}
	if err := o.Aliases.Validate(); err != nil {
		return err
	}
	if o.SeriesStart.IsZero() {
		o.SeriesStart = income.DefaultSeriesStart
	}
	if o.AllTimeStart.IsZero() {
		o.AllTimeStart = income.DefaultAllTimeStart
	}
	if o.Weeks <= 0 {
		o.Weeks = income.DefaultWeeks
	}
	if o.Parallel <= 0 {
		o.Parallel = 1
	}
	if o.Badges == nil {
		o.Badges = os.DirFS(o.BadgeDir)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) sourceOptions() source.Options {
	return source.Options{Operator: o.Operator, AnonymousName: o.AnonymousName, Logger: o.Logger}
}

// =============================================================================
// Result
// =============================================================================

// Result summarizes a run.
type Result struct {
	// Sponsors is the merged sponsor list, if any action needed it.
	Sponsors sponsor.Records

	// Written lists the SVG files produced, in Variants order.
	Written []string

	Stats Stats
}

// Stats contains timing and size information.
type Stats struct {
	Platforms  int // exports found
	Sponsors   int // after merging
	LoadTime   time.Duration
	RenderTime time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%d platforms, %d sponsors, load %v, render %v",
		s.Platforms, s.Sponsors, s.LoadTime.Round(time.Millisecond), s.RenderTime.Round(time.Millisecond))
}
