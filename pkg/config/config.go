// Package config loads sponsorwall settings.
//
// Settings are resolved in increasing priority:
//
//  1. built-in defaults ([Default])
//  2. the TOML file (sponsorwall.toml, or the --config path)
//  3. SPONSORWALL_* environment variables, after loading .env if present
//  4. command-line flags, applied by the CLI
//
// A minimal file:
//
//	data_dir   = "data"
//	output_dir = "www"
//	operator   = "Jane Doe"
//
//	[aliases]
//	"jdoe-old" = "Jane Doe"
//
//	[cache]
//	ttl = "168h"
//
//	[fetch]
//	parallel = 8
package config

import (
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/schneegans/sponsorwall/pkg/errors"
	"github.com/schneegans/sponsorwall/pkg/income"
	"github.com/schneegans/sponsorwall/pkg/source"
	"github.com/schneegans/sponsorwall/pkg/sponsor"
)

// DefaultFile is read when no --config flag is given, if it exists.
const DefaultFile = "sponsorwall.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPONSORWALL_"

// Config holds all settings.
type Config struct {
	DataDir   string `toml:"data_dir"`
	BadgeDir  string `toml:"badge_dir"`
	OutputDir string `toml:"output_dir"`

	// AvatarDir resolves relative PayPal and Ko-fi avatar paths. Empty means
	// the working directory.
	AvatarDir string `toml:"avatar_dir"`

	// Operator is excluded from the Ko-fi sponsor list and income.
	Operator      string `toml:"operator"`
	AnonymousName string `toml:"anonymous_name"`

	SeriesStart  Date `toml:"series_start"`
	AllTimeStart Date `toml:"all_time_start"`
	WeeklyWeeks  int  `toml:"weekly_weeks"`

	// Aliases are added to the built-in ones; a file entry with the same
	// key replaces the default.
	Aliases sponsor.AliasTable `toml:"aliases"`

	Cache CacheConfig `toml:"cache"`
	Fetch FetchConfig `toml:"fetch"`
}

// CacheConfig controls the avatar byte cache.
type CacheConfig struct {
	Dir      string   `toml:"dir"` // empty means the per-user cache dir
	TTL      Duration `toml:"ttl"`
	Disabled bool     `toml:"disabled"`
}

// FetchConfig controls avatar downloads.
type FetchConfig struct {
	Parallel  int      `toml:"parallel"`
	UserAgent string   `toml:"user_agent"`
	Timeout   Duration `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:       "data",
		BadgeDir:      "img",
		OutputDir:     "www",
		Operator:      "Simon Schneegans",
		AnonymousName: source.DefaultAnonymousName,
		SeriesStart:   Date{income.DefaultSeriesStart},
		AllTimeStart:  Date{income.DefaultAllTimeStart},
		WeeklyWeeks:   income.DefaultWeeks,
		Aliases: sponsor.AliasTable{
			"DonHopkins":   "Don Hopkins",
			"AJCxZ0":       "Andrew J. Caines",
			"DR_TS":        "denis-roy",
			"James Vega":   "D3vil0p3r",
			"markpieheart": "JonathanHolt",
		},
		Cache: CacheConfig{TTL: Duration{7 * 24 * time.Hour}},
		Fetch: FetchConfig{Parallel: 4, UserAgent: "Mozilla/5.0", Timeout: Duration{10 * time.Second}},
	}
}

// Load resolves the configuration from defaults, the file at path, .env and
// the environment. An empty path reads DefaultFile if it exists; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, explicit := path, path != ""
	if !explicit {
		file = DefaultFile
	}
	if err := cfg.decodeFile(file, explicit); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// applyEnv overrides paths, the operator and the cache from the environment.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DATA_DIR":   &c.DataDir,
		"BADGE_DIR":  &c.BadgeDir,
		"OUTPUT_DIR": &c.OutputDir,
		"AVATAR_DIR": &c.AvatarDir,
		"CACHE_DIR":  &c.Cache.Dir,
		"OPERATOR":   &c.Operator,
		"USER_AGENT": &c.Fetch.UserAgent,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := lookup(EnvPrefix + "NO_CACHE"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sNO_CACHE", EnvPrefix)
		}
		c.Cache.Disabled = b
	}
	if v, ok := lookup(EnvPrefix + "PARALLEL"); ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sPARALLEL", EnvPrefix)
		}
		c.Fetch.Parallel = n
	}
	return nil
}

// Validate checks the configuration for values no run could succeed with.
func (c *Config) Validate() error {
	var problems []string

	for name, v := range map[string]string{"data_dir": c.DataDir, "badge_dir": c.BadgeDir, "output_dir": c.OutputDir} {
		if strings.TrimSpace(v) == "" {
			problems = append(problems, name+" must not be empty")
		}
	}
	if c.WeeklyWeeks < 1 {
		problems = append(problems, "weekly_weeks must be at least 1")
	}
	if c.Fetch.Parallel < 1 {
		problems = append(problems, "fetch.parallel must be at least 1")
	}
	if c.Fetch.Timeout.Duration < 0 {
		problems = append(problems, "fetch.timeout must not be negative")
	}
	if c.Cache.TTL.Duration < 0 {
		problems = append(problems, "cache.ttl must not be negative")
	}
	if c.SeriesStart.IsZero() {
		problems = append(problems, "series_start must be set")
	}
	if err := c.Aliases.Validate(); err != nil {
		problems = append(problems, errors.UserMessage(err))
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return errors.New(errors.ErrCodeInvalidConfig, "invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
