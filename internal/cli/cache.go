package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schneegans/sponsorwall/pkg/cache"
	"github.com/schneegans/sponsorwall/pkg/config"
)

// cacheCommand creates the avatar cache management command.
func (c *CLI) cacheCommand(flags *runFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the avatar cache",
	}
	cmd.AddCommand(c.cacheClearCommand(flags))
	cmd.AddCommand(c.cachePathCommand(flags))
	return cmd
}

func (c *CLI) cacheClearCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached avatars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(flags.config)
			if err != nil {
				return err
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache %s: %w", dir, err)
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("cache cleared", "dir", dir, "entries", count)

			printSuccess("Cleared %d cached avatars", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) cachePathCommand(flags *runFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(flags.config)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Stdout, dir)
			return nil
		},
	}
}

// cacheDir returns the configured cache directory or the per-user default.
func cacheDir(configFile string) (string, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return dir, nil
}
