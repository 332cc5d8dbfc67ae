package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/schneegans/sponsorwall/pkg/avatar"
	"github.com/schneegans/sponsorwall/pkg/buildinfo"
	"github.com/schneegans/sponsorwall/pkg/cache"
	"github.com/schneegans/sponsorwall/pkg/config"
	"github.com/schneegans/sponsorwall/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Stdout receives the CSV and integer reports.
	Stdout io.Writer
}

// New creates a CLI logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), Stdout: os.Stdout}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// runFlags are the root command flags.
type runFlags struct {
	svg, graph, donors, platforms, weekly, total bool

	config    string
	dataDir   string
	badgeDir  string
	outputDir string
	avatarDir string
	noCache   bool
	parallel  int
}

func (f runFlags) actions() []pipeline.Action {
	var actions []pipeline.Action
	for _, sel := range []struct {
		on     bool
		action pipeline.Action
	}{
		{f.svg, pipeline.ActionSVG},
		{f.graph, pipeline.ActionGraph},
		{f.donors, pipeline.ActionDonors},
		{f.platforms, pipeline.ActionPlatforms},
		{f.weekly, pipeline.ActionWeekly},
		{f.total, pipeline.ActionTotal},
	} {
		if sel.on {
			actions = append(actions, sel.action)
		}
	}
	return actions
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		flags   runFlags
		verbose bool
	)

	root := &cobra.Command{
		Use:   "sponsorwall",
		Short: "Sponsorwall renders a tiered avatar wall from donation exports",
		Long: `Sponsorwall reads GitHub Sponsors, Ko-fi and PayPal exports, merges donors
across platforms and renders them as tiered SVG avatar walls. It can also
print income summaries as CSV.

With no action flag nothing is done.`,
		Example: `  sponsorwall --svg
  sponsorwall --graph > income.csv
  sponsorwall --donors --total --data-dir exports`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			actions := flags.actions()
			if len(actions) == 0 {
				return nil
			}
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}
			return c.runWall(cmd.Context(), actions, cfg)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.Flags()
	f.BoolVar(&flags.svg, "svg", false, "render the SVG avatar walls into the output directory")
	f.BoolVar(&flags.graph, "graph", false, "print the monthly income series as CSV")
	f.BoolVar(&flags.donors, "donors", false, "print the merged donor list as CSV")
	f.BoolVar(&flags.platforms, "platforms", false, "print per-platform totals as CSV")
	f.BoolVar(&flags.weekly, "weekly", false, "print the average weekly income")
	f.BoolVar(&flags.total, "total", false, "print the all-time income")

	pf := root.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&flags.config, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "directory with the platform exports")
	pf.StringVar(&flags.badgeDir, "badge-dir", "", "directory with the tier badge images")
	pf.StringVar(&flags.outputDir, "output-dir", "", "directory the SVG documents are written to")
	pf.StringVar(&flags.avatarDir, "avatar-dir", "", "base for relative avatar paths (default working directory)")
	pf.BoolVar(&flags.noCache, "no-cache", false, "disable the avatar cache")
	pf.IntVar(&flags.parallel, "parallel", 0, "concurrent avatar downloads")

	root.AddCommand(c.cacheCommand(&flags))
	root.AddCommand(c.configCommand(&flags))
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command, flags runFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, err
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.badgeDir != "" {
		cfg.BadgeDir = flags.badgeDir
	}
	if flags.outputDir != "" {
		cfg.OutputDir = flags.outputDir
	}
	if flags.avatarDir != "" {
		cfg.AvatarDir = flags.avatarDir
	}
	if flags.noCache {
		cfg.Cache.Disabled = true
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Fetch.Parallel = flags.parallel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// =============================================================================
// Run
// =============================================================================

// runWall executes actions and reports the written documents on stderr.
func (c *CLI) runWall(ctx context.Context, actions []pipeline.Action, cfg *config.Config) error {
	logger := loggerFromContext(ctx)
	logger.Debug("starting", "version", buildinfo.String(), "actions", actions)

	store, err := cache.New(cache.Options{Dir: cfg.Cache.Dir, Disabled: cfg.Cache.Disabled})
	if err != nil {
		logger.Warn("avatar cache unavailable, continuing without", "err", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	fetcher := avatar.NewSourceFetcher(avatar.FetchOptions{
		UserAgent: cfg.Fetch.UserAgent,
		Timeout:   cfg.Fetch.Timeout.Duration,
		Cache:     store,
		TTL:       cfg.Cache.TTL.Duration,
		BaseDir:   cfg.AvatarDir,
	})
	runner := pipeline.NewRunner(fetcher, logger)

	opts := pipeline.OptionsFromConfig(cfg)
	opts.Logger = logger

	rendering := slices.Contains(actions, pipeline.ActionSVG)
	var spinner *Spinner
	if rendering && logger.GetLevel() > log.DebugLevel {
		spinner = newSpinnerWithContext(ctx, "Rendering sponsor wall...")
		installHooks(logger, spinner)
		spinner.Start()
	} else {
		installHooks(logger, nil)
	}

	prog := newProgress(logger)
	res, err := runner.Run(ctx, actions, c.Stdout, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Rendering failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if res.Stats.Platforms == 0 {
		printWarning("No exports found in %s", cfg.DataDir)
	}
	if rendering {
		printSuccess("Generated %d documents", len(res.Written))
		for _, path := range res.Written {
			printFile(path)
		}
		printStats(res.Stats)
		prog.done("Done")
	}
	return nil
}

// =============================================================================
// Config Command
// =============================================================================

// configCommand prints the resolved configuration.
func (c *CLI) configCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *flags)
			if err != nil {
				return err
			}
			file := flags.config
			if file == "" {
				file = config.DefaultFile
			}
			cacheDir := cfg.Cache.Dir
			if cacheDir == "" {
				cacheDir, _ = cache.DefaultDir()
			}

			printKeyValue("Config", file)
			printKeyValue("Data", cfg.DataDir)
			printKeyValue("Badges", cfg.BadgeDir)
			printKeyValue("Output", cfg.OutputDir)
			if cfg.AvatarDir != "" {
				printKeyValue("Avatars", cfg.AvatarDir)
			} else {
				printKeyValue("Avatars", StyleDim.Render("working directory"))
			}
			printKeyValue("Operator", cfg.Operator)
			printKeyValue("Series", cfg.SeriesStart.Format("2006-01-02"))
			printKeyValue("Weekly", fmt.Sprintf("last %d weeks", cfg.WeeklyWeeks))
			printKeyValue("Parallel", fmt.Sprint(cfg.Fetch.Parallel))
			if cfg.Cache.Disabled {
				printKeyValue("Cache", StyleDim.Render("disabled"))
			} else {
				printKeyValue("Cache", fmt.Sprintf("%s (ttl %s)", cacheDir, cfg.Cache.TTL.Duration))
			}
			aliases := make([]string, 0, len(cfg.Aliases))
			for from, to := range cfg.Aliases {
				aliases = append(aliases, from+" → "+to)
			}
			slices.Sort(aliases)
			printKeyValue("Aliases", strings.Join(aliases, ", "))
			return nil
		},
	}
}
