package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"kibble-ration/internal/cli"
	"kibble-ration/internal/config"
	"kibble-ration/internal/logging"
	"kibble-ration/internal/ration"
	"kibble-ration/internal/store"
	"kibble-ration/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Help was printed
	if cfg == nil && len(os.Args) > 1 {
		return
	}

	// No flags provided = use GUI
	if cfg == nil {
		if err := runGUI(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// CLI mode
	if err := cli.Run(*cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGUI() error {
	a := app.NewWithID(config.AppID)

	conf, err := config.Load(config.DefaultPath, store.BackendPreferences)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(os.Stderr, conf.Log.Level, conf.Log.Format)
	if err != nil {
		return err
	}

	backend, err := store.Open(conf.Storage.Backend, conf.Storage.Path, a.Preferences())
	if err != nil {
		return err
	}
	defer backend.Close()

	m := ration.New(backend,
		ration.WithLogger(logger),
		ration.WithStrictInvariants(conf.Strict),
	)

	win := ui.BuildMainWindow(a, m, ui.Options{
		ExportDir: conf.Export.Dir,
		Logger:    logger,
	})
	win.ShowAndRun()
	return nil
}
