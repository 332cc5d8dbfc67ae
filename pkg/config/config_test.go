package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/schneegans/sponsorwall/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sponsorwall.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Fetch.Parallel != 4 || c.WeeklyWeeks != 53 || c.AnonymousName != "Ko-fi Supporter" || c.AvatarDir != "" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if got := c.Aliases.Resolve("DonHopkins"); got != "Don Hopkins" {
		t.Errorf("default alias = %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data_dir = "exports"
operator = "Jane Doe"
series_start = 2022-03-01
all_time_start = "2010-01-01"
weekly_weeks = 4

[aliases]
"jdoe-old" = "Jane Doe"

[cache]
ttl = "1h"
disabled = true

[fetch]
parallel = 8
timeout = "30s"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.DataDir != "exports" || c.OutputDir != "www" {
		t.Errorf("dirs = %q, %q", c.DataDir, c.OutputDir)
	}
	if c.Operator != "Jane Doe" {
		t.Errorf("Operator = %q", c.Operator)
	}
	if want := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC); !c.SeriesStart.Equal(want) {
		t.Errorf("SeriesStart = %v, want %v", c.SeriesStart, want)
	}
	if want := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC); !c.AllTimeStart.Equal(want) {
		t.Errorf("AllTimeStart = %v, want %v", c.AllTimeStart, want)
	}
	if c.WeeklyWeeks != 4 {
		t.Errorf("WeeklyWeeks = %d", c.WeeklyWeeks)
	}
	if c.Aliases.Resolve("jdoe-old") != "Jane Doe" || c.Aliases.Resolve("AJCxZ0") != "Andrew J. Caines" {
		t.Errorf("aliases not merged with defaults: %v", c.Aliases)
	}
	if c.Cache.TTL.Duration != time.Hour || !c.Cache.Disabled {
		t.Errorf("Cache = %+v", c.Cache)
	}
	if c.Fetch.Parallel != 8 || c.Fetch.Timeout.Duration != 30*time.Second || c.Fetch.UserAgent != "Mozilla/5.0" {
		t.Errorf("Fetch = %+v", c.Fetch)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "data_dirr = \"x\"\n", "unknown keys data_dirr"},
		{"syntax", "data_dir = \n", "config"},
		{"bad duration", "[cache]\nttl = \"soon\"\n", "config"},
		{"invalid parallel", "[fetch]\nparallel = 0\n", "fetch.parallel must be at least 1"},
		{"alias chain", "[aliases]\na = \"b\"\nb = \"c\"\n", "which is an alias too"},
		{"empty output", "output_dir = \"\"\n", "output_dir must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want INVALID_CONFIG", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("explicit missing file error = %v", err)
	}

	// Without an explicit path a missing default file is fine.
	chdir(t, t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if c.DataDir != "data" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SPONSORWALL_DATA_DIR", "/srv/exports")
	t.Setenv("SPONSORWALL_OPERATOR", "Someone Else")
	t.Setenv("SPONSORWALL_NO_CACHE", "true")
	t.Setenv("SPONSORWALL_PARALLEL", "2")
	t.Setenv("SPONSORWALL_AVATAR_DIR", "/srv/avatars")

	c, err := Load(writeConfig(t, "data_dir = \"from-file\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.DataDir != "/srv/exports" {
		t.Errorf("env should override file, DataDir = %q", c.DataDir)
	}
	if c.Operator != "Someone Else" || !c.Cache.Disabled || c.Fetch.Parallel != 2 || c.AvatarDir != "/srv/avatars" {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestEnvOverrideErrors(t *testing.T) {
	c := Default()
	lookup := func(k string) (string, bool) {
		if k == EnvPrefix+"PARALLEL" {
			return "many", true
		}
		return "", false
	}
	if err := c.applyEnv(lookup); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("applyEnv() error = %v", err)
	}
}

func TestDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("SPONSORWALL_OUTPUT_DIR=public\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	// godotenv never overrides variables already set; make sure ours is not.
	os.Unsetenv("SPONSORWALL_OUTPUT_DIR")
	t.Cleanup(func() { os.Unsetenv("SPONSORWALL_OUTPUT_DIR") })

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.OutputDir != "public" {
		t.Errorf("OutputDir = %q, want value from .env", c.OutputDir)
	}
}
