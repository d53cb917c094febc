package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/tickplot/service"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plotCfg := service.PlotConfig{
		Symbols:        cfg.Symbols,
		DataDir:        cfg.DataDir,
		DataBaseURL:    cfg.DataBaseURL,
		CacheDir:       cfg.CacheDir,
		OutputPath:     cfg.Output,
		SnapshotPath:   cfg.Snapshot,
		OpenBrowser:    cfg.Open,
		Title:          cfg.Title,
		Theme:          cfg.Theme,
		ClickPolicy:    cfg.ClickPolicy,
		LegendLocation: cfg.LegendLocation,
		HoverMode:      cfg.HoverMode,
		Tools:          cfg.Tools,
		SMAWindow:      cfg.SMAWindow,
		VWAP:           cfg.VWAP,
	}
	plot, err := service.NewPlot(&plotCfg)
	if err != nil {
		log.Printf("creating plot service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	err = plot.Run(ctx)
	if err != nil {
		log.Printf("running plot service: %v", err)
	}
}
