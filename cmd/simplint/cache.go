package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"simplint/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the persistent result cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove all cached lint results",
	Args:  cobra.NoArgs,
	RunE:  runCacheClean,
}

func init() {
	cacheCleanCmd.Flags().String("cache-dir", "", "cache directory (default: XDG cache)")
	cacheCmd.AddCommand(cacheCleanCmd)
}

func runCacheClean(cmd *cobra.Command, _ []string) error {
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}

	var c *cache.Cache
	if cacheDir != "" {
		c, err = cache.OpenAt(cacheDir)
	} else {
		c, err = cache.Open("simplint")
	}
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := c.DropAll(); err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	fmt.Fprintf(os.Stdout, "cleaned %s\n", c.Dir())
	return nil
}
