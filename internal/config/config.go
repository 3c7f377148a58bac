package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	StaleThreshold   time.Duration
	FeedPollInterval time.Duration
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultStaleThreshold   = 96 * time.Hour
	defaultFeedPollInterval = 5 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		StaleThreshold:   getDuration(lookup, "STALE_THRESHOLD", defaultStaleThreshold),
		FeedPollInterval: getDuration(lookup, "FEED_POLL_INTERVAL", defaultFeedPollInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("printflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		staleThresholdStr  = cfg.StaleThreshold.String()
		feedPollStr        = cfg.FeedPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&staleThresholdStr, "stale-threshold", staleThresholdStr, "Age after which an untouched order triggers a stagnation alert")
	fs.StringVar(&feedPollStr, "feed-poll", feedPollStr, "Fallback polling interval for the board snapshot feed")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.StaleThreshold, err = time.ParseDuration(staleThresholdStr); err != nil {
		return nil, fmt.Errorf("invalid stale threshold: %w", err)
	}

	if cfg.FeedPollInterval, err = time.ParseDuration(feedPollStr); err != nil {
		return nil, fmt.Errorf("invalid feed poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.StaleThreshold <= 0 {
		cfg.StaleThreshold = defaultStaleThreshold
	}

	if cfg.FeedPollInterval <= 0 {
		cfg.FeedPollInterval = defaultFeedPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
