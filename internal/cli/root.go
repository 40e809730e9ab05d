package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/arthomnix/libaoc/internal/client"
	"github.com/arthomnix/libaoc/internal/config"
	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	session  string
	cacheDir string
	interval time.Duration
	verbose  bool
	refetch  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "aoc",
	Short: "A polite Advent of Code client.",
	Long: `aoc fetches Advent of Code puzzle inputs, puzzle text, and worked
examples for a logged-in account, identified by the value of the site's
"session" cookie (flag --session, variable AOC_SESSION, or a .env file).

Fetched data is cached in memory and persisted to the cache directory on
exit, and outbound requests are spaced out per the site's automation
etiquette, so repeated runs cost no extra traffic.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&session, "session", "", "session cookie value (defaults to $AOC_SESSION)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache root directory (defaults to the user cache dir)")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", 0, "minimum spacing between requests (default 3m)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&refetch, "refetch", false, "bypass caches and fetch fresh data")
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// buildConfig resolves configuration from the environment with flag
// overrides applied on top.
func buildConfig() (config.Config, error) {
	builder, err := config.BuilderFromEnv()
	if err != nil {
		return config.Config{}, err
	}
	if session != "" {
		builder = builder.WithSession(session)
	}
	if cacheDir != "" {
		builder = builder.WithCacheDir(cacheDir)
	}
	if interval > 0 {
		builder = builder.WithThrottleInterval(interval)
	}
	return builder.Build()
}

func buildClient() (*client.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}
	return client.NewDefault(cfg, metadata.NewSlogSink(nil)), nil
}

// closeClient flushes the caches; a failed flush loses nothing the next
// run cannot refetch, so it only warns.
func closeClient(c *client.Client) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to persist cache", "error", err)
	}
}

// parseDayArgs parses the common "YEAR DAY" positional arguments.
func parseDayArgs(args []string) (year int, day int, err error) {
	year, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", args[0])
	}
	day, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid day %q", args[1])
	}
	return year, day, nil
}
