package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"pocketpet/internal/command"
	"pocketpet/internal/config"
	"pocketpet/internal/pet"
	"pocketpet/internal/storage"
	"pocketpet/internal/ui"
)

type options struct {
	configPath string
	stats      bool
	do         string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pocketpet", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to config.yaml (default ~/.config/pocketpet/config.yaml)")
	fs.BoolVar(&opts.stats, "stats", false, "show current stats and exit")
	fs.StringVar(&opts.do, "do", "", "run one command (e.g. \"feed\", \"use toy\") and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

// loadConfig resolves the config directory and reads the config file
func loadConfig(opts options) (*config.Config, string, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, "", err
	}

	path := opts.configPath
	if path == "" {
		if path, err = config.DefaultPath(); err != nil {
			return nil, "", err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, dir, nil
}

// openEngine opens the configured store and restores the saved pet
func openEngine(cfg *config.Config, dir string) (*pet.Engine, storage.Store, error) {
	store, err := storage.Open(cfg.Storage, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	engine := pet.NewEngine(store, cfg.EngineConfig())
	engine.Load()
	return engine, store, nil
}

// runOnce executes a single typed command and writes the result to w
func runOnce(engine *pet.Engine, raw string, w io.Writer) error {
	intent, out := command.Run(engine, raw)
	fmt.Fprintln(w, out)
	if !intent.OK() {
		return fmt.Errorf("could not run %q", raw)
	}
	return nil
}

func run(opts options) error {
	cfg, dir, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := tea.LogToFile(cfg.LogPath(dir), "")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	engine, store, err := openEngine(cfg, dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if opts.do != "" {
		return runOnce(engine, opts.do, os.Stdout)
	}
	if opts.stats {
		return ui.DisplayStats(engine.Name(), engine.Snapshot())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	scheduler := pet.NewScheduler(engine, cfg.Timers.DecayInterval, cfg.Timers.ReplenishInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	model, unsubscribe := ui.NewModel(engine)
	defer unsubscribe()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("alas, there's been an error: %w", err)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}
