package audio

import (
	"fmt"
	"time"

	"github.com/henningko/mopidy/internal/tags"
)

const (
	// DefaultTimeout bounds the wall-clock time spent polling for events
	// during one scan.
	DefaultTimeout = 1000 * time.Millisecond

	// DefaultMinDuration rejects resources with less audio than this.
	DefaultMinDuration = 100 * time.Millisecond

	// NoMinDuration disables the minimum-duration check.
	NoMinDuration = time.Duration(-1)
)

// AudioCaps restricts the pipeline to raw audio so the scanner never pulls
// in video decoding.
const AudioCaps = "audio/x-raw-int; audio/x-raw-float"

// ScanError is the single error kind a scan produces: engine-reported
// decode errors, polling timeouts and below-minimum-duration rejections.
// All are terminal for the scan but leave the scanner reusable.
type ScanError struct {
	Message string
}

func (e *ScanError) Error() string {
	return e.Message
}

func scanErrorf(format string, args ...any) *ScanError {
	return &ScanError{Message: fmt.Sprintf(format, args...)}
}

// Scanner collects tags and other relevant info from URIs by priming a
// decode pipeline, polling its event stream under a deadline, and tearing
// the pipeline down to a clean baseline on every exit path.
//
// A Scanner owns its engine exclusively and must not be used for
// overlapping Scan calls; use one Scanner per goroutine.
type Scanner struct {
	engine      Engine
	timeout     time.Duration
	minDuration time.Duration
}

// ScannerConfig configures a Scanner. The zero value means "no polling
// time" and "accept any duration >= 0"; use the Default constants for the
// usual behavior.
type ScannerConfig struct {
	// Timeout is the maximum wall-clock time spent collecting events,
	// measured from loop entry.
	Timeout time.Duration

	// MinDuration rejects resources shorter than this. NoMinDuration
	// accepts everything, including resources with unknown duration.
	MinDuration time.Duration
}

// NewScanner creates a scanner around the given engine.
func NewScanner(engine Engine, cfg ScannerConfig) *Scanner {
	engine.SetCaps(AudioCaps)
	return &Scanner{
		engine:      engine,
		timeout:     cfg.Timeout,
		minDuration: cfg.MinDuration,
	}
}

// Scan collects metadata for the given URI. The returned bag always holds
// uri, and holds mtime and duration when they could be determined. The
// pipeline is reset before Scan returns, so the scanner is immediately
// reusable whether the scan succeeded or not.
func (s *Scanner) Scan(uri string) (tags.Raw, error) {
	defer s.reset()

	if err := s.setup(uri); err != nil {
		return nil, err
	}

	data, err := s.collect()
	if err != nil {
		return nil, err
	}

	// Reserved keys are assigned here, after polling, and Merge refuses
	// them, so tag events can never overwrite uri, mtime or duration.
	data[tags.KeyURI] = tags.String(uri)
	if mtime, ok := queryMtime(uri); ok {
		data[tags.KeyMtime] = tags.Int(mtime)
	}
	duration, haveDuration := s.engine.QueryDuration()
	if haveDuration {
		data[tags.KeyDuration] = tags.Int(duration.Milliseconds())
	}

	if s.minDuration == NoMinDuration {
		return data, nil
	}
	if haveDuration && duration >= s.minDuration {
		return data, nil
	}
	return nil, scanErrorf("rejecting resource with less than %dms audio data",
		s.minDuration.Milliseconds())
}

// setup primes the pipeline: ready baseline, bind target, resume event
// delivery, advance toward paused. Live sources that cannot pre-roll are
// advanced to playing instead so tag data still surfaces.
func (s *Scanner) setup(uri string) error {
	if err := s.engine.Reset(); err != nil {
		return scanErrorf("reset pipeline: %v", err)
	}
	if err := s.engine.SetURI(uri); err != nil {
		return scanErrorf("bind %s: %v", uri, err)
	}
	s.engine.SetFlushing(false)

	change, err := s.engine.SetState(StatePaused)
	if err != nil {
		return scanErrorf("pause pipeline: %v", err)
	}
	if change == StateChangeNoPreroll {
		if _, err := s.engine.SetState(StatePlaying); err != nil {
			return scanErrorf("play pipeline: %v", err)
		}
	}
	return nil
}

// collect polls for events until a terminal event or the deadline.
func (s *Scanner) collect() (tags.Raw, error) {
	deadline := time.Now().Add(s.timeout)
	data := make(tags.Raw)

	for time.Now().Before(deadline) {
		ev, ok := s.engine.PollEvent()
		if !ok {
			continue
		}

		switch ev := ev.(type) {
		case ErrorEvent:
			return nil, &ScanError{Message: ev.Message}
		case EOSEvent:
			return data, nil
		case StateSettledEvent:
			// Child elements settle on their own while the graph is
			// still negotiating; only the pipeline's settle counts.
			if ev.FromPipeline {
				return data, nil
			}
		case TagEvent:
			data.Merge(ev.Tags)
		}
	}

	return nil, scanErrorf("timeout after %dms", s.timeout.Milliseconds())
}

// reset flushes the bus and drives the pipeline back to null. Best-effort:
// failures are swallowed so every exit path leaves the scanner reusable.
func (s *Scanner) reset() {
	s.engine.SetFlushing(true)
	_, _ = s.engine.SetState(StateNull)
}
