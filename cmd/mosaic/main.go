// Package main is the entry point for the Mosaic layout editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mosaicedit/mosaic/internal/config"
	"github.com/mosaicedit/mosaic/internal/layout"
	"github.com/mosaicedit/mosaic/internal/logger"
	"github.com/mosaicedit/mosaic/internal/script"
	"github.com/mosaicedit/mosaic/internal/session"
	"github.com/mosaicedit/mosaic/internal/tui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		logLevel    string
		scriptPath  string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.StringVar(&configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	flag.StringVar(&scriptPath, "script", "", "Run a Lua layout script on the seeded layout before starting")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Mosaic - terminal layout editor with transactional undo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mosaic [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("Mosaic %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := initLogging(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Infof("mosaic %s starting", version)

	sess := session.New(session.WithMaxDepth(cfg.History.MaxDepth))
	defer sess.Close()
	sess.Seed(seedLayout(cfg))

	if scriptPath != "" {
		src, err := os.ReadFile(scriptPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		runner := script.NewRunner(sess)
		if err := runner.Run(scriptPath, string(src)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	term, err := tui.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer term.Close()

	if configPath != "" {
		watcher, err := config.Watch(configPath, term.PostReload)
		if err != nil {
			logger.Warnf("live reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	app := tui.NewApp(sess, term.Screen(), cfg)
	if err := app.Run(); err != nil {
		term.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func initLogging(lc config.LoggingConfig) error {
	lvl, err := logger.ParseLevel(lc.Level)
	if err != nil {
		return err
	}

	var w io.Writer
	if lc.File != "" {
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		w = f
	}
	// The terminal owns stdout; without a log file output stays off.
	logger.Init(lvl, w)
	return nil
}

// seedLayout builds the starting layout from the configured palette.
func seedLayout(cfg config.Config) []layout.Region {
	pick := func(i int) string {
		if len(cfg.UI.Palette) == 0 {
			return cfg.UI.DefaultFill
		}
		return cfg.UI.Palette[i%len(cfg.UI.Palette)]
	}
	return []layout.Region{
		{ID: "sidebar", Name: "sidebar", Frame: layout.Rect{X: 0, Y: 0, W: 18, H: 20}, Fill: pick(0)},
		{ID: "canvas", Name: "canvas", Frame: layout.Rect{X: 18, Y: 0, W: 50, H: 14}, Fill: pick(1)},
		{ID: "console", Name: "console", Frame: layout.Rect{X: 18, Y: 14, W: 50, H: 6}, Fill: pick(2)},
	}
}
