package library

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/henningko/mopidy/internal/audio"
	"github.com/henningko/mopidy/internal/models"
)

const numWorkers = 8

// Scan phases reported through ScanProgress.
const (
	PhaseScanning   = "scanning"
	PhaseProcessing = "processing"
	PhaseCleaning   = "cleaning"
	PhaseDone       = "done"
)

// ScanProgress reports the progress of a library refresh.
type ScanProgress struct {
	Phase      string
	Current    int
	Total      int
	CurrentURI string
	Stats      *ScanStats // only populated when Phase == PhaseDone
}

// ScanStats holds statistics for a completed refresh.
type ScanStats struct {
	BySource map[string]*SourceStats // keyed by source path
}

// SourceStats holds per-source refresh statistics, as source-relative paths.
type SourceStats struct {
	Added   []string
	Updated []string
	Removed []string
	Failed  []string
}

// ScannerFactory builds a scanner for one worker. A scanner owns its
// pipeline exclusively, so the refresh builds one per worker instead of
// sharing one across goroutines.
type ScannerFactory func() *audio.Scanner

// trackResult is one successfully scanned and translated file.
type trackResult struct {
	path   string
	track  models.Track
	source string
	isNew  bool
}

// Refresh incrementally scans the source directories: unchanged files
// (same mtime as stored) are skipped, new and modified files are probed
// and upserted, and rows for deleted files are removed.
func (l *Library) Refresh(sources []string, newScanner ScannerFactory, progress chan<- ScanProgress) error {
	return l.refresh(sources, newScanner, progress, false)
}

// FullRefresh rescans every file regardless of modification time.
func (l *Library) FullRefresh(sources []string, newScanner ScannerFactory, progress chan<- ScanProgress) error {
	return l.refresh(sources, newScanner, progress, true)
}

func (l *Library) refresh(sources []string, newScanner ScannerFactory, progress chan<- ScanProgress, force bool) error {
	defer close(progress)

	stats := &ScanStats{BySource: make(map[string]*SourceStats)}
	for _, src := range sources {
		stats.BySource[src] = &SourceStats{}
	}

	progress <- ScanProgress{Phase: PhaseScanning}
	files, discovered := discoverFiles(sources, progress)

	existing, err := l.existingMtimes(sources)
	if err != nil {
		return err
	}

	toProcess := make([]fileInfo, 0, len(files))
	isNew := make(map[string]bool)
	for _, f := range files {
		uri := audio.PathToURI(f.path)
		if !force {
			if mtime, ok := existing[uri]; ok && mtime == f.mtime {
				continue
			}
		}
		_, existed := existing[uri]
		isNew[f.path] = !existed
		toProcess = append(toProcess, f)
	}

	if len(toProcess) > 0 {
		l.processFiles(toProcess, isNew, newScanner, stats, progress)
	}

	progress <- ScanProgress{Phase: PhaseCleaning}
	var stale []string
	for uri := range existing {
		path, ok := audio.URIToPath(uri)
		if !ok {
			continue
		}
		if _, found := discovered[path]; !found {
			stale = append(stale, uri)
			for src, srcStats := range stats.BySource {
				if strings.HasPrefix(path, src) {
					srcStats.Removed = append(srcStats.Removed, relativePath(src, path))
					break
				}
			}
		}
	}
	if err := l.deleteByURIs(stale); err != nil {
		return err
	}

	progress <- ScanProgress{Phase: PhaseDone, Current: len(files), Total: len(files), Stats: stats}
	return nil
}

// processFiles probes files in parallel, one scanner per worker, and
// upserts results sequentially to keep sqlite happy.
func (l *Library) processFiles(
	toProcess []fileInfo,
	isNew map[string]bool,
	newScanner ScannerFactory,
	stats *ScanStats,
	progress chan<- ScanProgress,
) {
	total := len(toProcess)
	var processed atomic.Int64

	workCh := make(chan fileInfo, total)
	resultCh := make(chan trackResult, total)
	failCh := make(chan fileInfo, total)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Go(func() {
			scanner := newScanner()
			for f := range workCh {
				data, err := scanner.Scan(audio.PathToURI(f.path))
				processed.Add(1)
				if err != nil {
					failCh <- f
					continue
				}
				resultCh <- trackResult{
					path:   f.path,
					track:  audio.ToTrack(data),
					source: f.source,
					isNew:  isNew[f.path],
				}
			}
		})
	}

	go func() {
		for _, f := range toProcess {
			workCh <- f
		}
		close(workCh)
	}()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				progress <- ScanProgress{
					Phase:   PhaseProcessing,
					Current: int(processed.Load()),
					Total:   total,
				}
			case <-done:
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
		close(failCh)
	}()

	for result := range resultCh {
		_ = l.Upsert(result.track)

		relPath := relativePath(result.source, result.path)
		if srcStats, ok := stats.BySource[result.source]; ok {
			if result.isNew {
				srcStats.Added = append(srcStats.Added, relPath)
			} else {
				srcStats.Updated = append(srcStats.Updated, relPath)
			}
		}
	}
	for f := range failCh {
		if srcStats, ok := stats.BySource[f.source]; ok {
			srcStats.Failed = append(srcStats.Failed, relativePath(f.source, f.path))
		}
	}

	close(done)
	progress <- ScanProgress{Phase: PhaseProcessing, Current: total, Total: total}
}
