// mopidy-scan walks the configured music directories, probes each file for
// tags and duration, and keeps the results in a local sqlite library.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/henningko/mopidy/internal/audio"
	"github.com/henningko/mopidy/internal/config"
	"github.com/henningko/mopidy/internal/library"
)

func main() {
	full := flag.Bool("full", false, "rescan every file, ignoring modification times")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	sources := flag.Args()
	if len(sources) == 0 {
		sources = cfg.Library.Sources
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "usage: mopidy-scan [-full] [dir ...]")
		fmt.Fprintln(os.Stderr, "no directories given and no library.sources configured")
		os.Exit(2)
	}

	lib, err := library.Open(cfg.Library.Path)
	if err != nil {
		log.Fatalf("open library %s: %v", cfg.Library.Path, err)
	}
	defer lib.Close()

	factory := func() *audio.Scanner {
		return audio.NewScanner(audio.NewFileEngine(), audio.ScannerConfig{
			Timeout:     cfg.Scanner.Timeout(),
			MinDuration: cfg.Scanner.MinDuration(),
		})
	}

	progress := make(chan library.ScanProgress)
	errCh := make(chan error, 1)
	go func() {
		if *full {
			errCh <- lib.FullRefresh(sources, factory, progress)
		} else {
			errCh <- lib.Refresh(sources, factory, progress)
		}
	}()

	var stats *library.ScanStats
	for p := range progress {
		switch p.Phase {
		case library.PhaseScanning:
			fmt.Printf("\rdiscovering files: %d", p.Current)
		case library.PhaseProcessing:
			fmt.Printf("\rscanning: %d/%d", p.Current, p.Total)
		case library.PhaseDone:
			fmt.Println()
			stats = p.Stats
		}
	}
	if err := <-errCh; err != nil {
		log.Fatalf("scan: %v", err)
	}

	printReport(stats)

	count, err := lib.Count()
	if err != nil {
		log.Fatalf("count tracks: %v", err)
	}
	fmt.Printf("library: %d tracks in %s\n", count, cfg.Library.Path)
}

func printReport(stats *library.ScanStats) {
	if stats == nil {
		return
	}
	for src, s := range stats.BySource {
		fmt.Printf("%s: %d added, %d updated, %d removed",
			src, len(s.Added), len(s.Updated), len(s.Removed))
		if len(s.Failed) > 0 {
			fmt.Printf(", %d failed", len(s.Failed))
		}
		fmt.Println()
		for _, path := range s.Failed {
			fmt.Printf("  failed: %s\n", path)
		}
	}
}
