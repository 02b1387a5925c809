package main

import (
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"partscout/internal/cache"
	"partscout/internal/config"
	applog "partscout/internal/log"
	"partscout/internal/match"
	"partscout/internal/notify"
	"partscout/internal/search"
	"partscout/internal/vendors"
)

var (
	noColor bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "partscout",
	Short: "Compare PC part prices across Australian storefronts",
	Long: `partscout searches several PC hardware stores at once and merges
their listings so each product shows every store's price side by side.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug records")
}

// setupLogging sends records to stdout and, when configured, the log file.
// The returned closer releases the file.
func setupLogging(cfg config.Config, console io.Writer) func() {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	applog.SetLevel(level)

	out := console
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			out = io.MultiWriter(console, f)
			closer = func() { _ = f.Close() }
		}
	}
	applog.SetOutput(out)
	log.SetOutput(out)
	return closer
}

// buildEngine assembles the search orchestration from configuration.
func buildEngine(cfg config.Config, pub notify.Publisher) (*search.Service, cache.Client, error) {
	vocab := match.DefaultVocabulary()
	if cfg.VocabularyFile != "" {
		v, err := match.LoadVocabulary(cfg.VocabularyFile)
		if err != nil {
			return nil, nil, err
		}
		vocab = v
	}

	var store cache.Client = cache.NewMemoryClient()
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			applog.Warn("cache.redis.unavailable", err, map[string]any{"addr": cfg.RedisAddr})
		} else {
			store = rc
		}
	}

	client := vendors.NewClient(cfg.ProxyURL, cfg.VendorTimeout)
	engine := search.NewService(vendors.Default(client, cfg.Vendors), match.NewMerger(match.NewClassifier(vocab)))
	engine.Cache = store
	engine.CacheTTL = cfg.CacheTTL
	engine.Timeout = cfg.VendorTimeout
	engine.Notifier = pub
	return engine, store, nil
}
