package metrics

import (
	"sync"
	"time"
)

// Phase labels one stage of request processing.
type Phase string

const (
	// LoadPhase covers the full-table scan
	LoadPhase Phase = "load"
	// AggregatePhase covers normalization and stats roll-up
	AggregatePhase Phase = "aggregate"
	// PublishPhase covers the snapshot write
	PublishPhase Phase = "publish"
)

// PhaseMetric represents the measured duration of one phase
type PhaseMetric struct {
	Phase    Phase
	Duration time.Duration
	Err      error
}

// Recorder measures the named phases of a single request. A recorder is
// created per invocation and discarded with it; the mutex only guards against
// a future parallel phase, not cross-request sharing.
type Recorder struct {
	mu      sync.Mutex
	started time.Time
	phases  []PhaseMetric
}

// NewRecorder creates a recorder with the request clock already running.
func NewRecorder() *Recorder {
	return &Recorder{started: time.Now()}
}

// Measure runs fn and records its duration under the given phase. The
// function's error is recorded and returned unchanged.
func (r *Recorder) Measure(phase Phase, fn func() error) error {
	start := time.Now()
	err := fn()

	r.mu.Lock()
	r.phases = append(r.phases, PhaseMetric{
		Phase:    phase,
		Duration: time.Since(start),
		Err:      err,
	})
	r.mu.Unlock()

	return err
}

// Summary returns per-phase durations plus total elapsed time, in a shape
// ready for structured logging.
func (r *Recorder) Summary() map[string]interface{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := map[string]interface{}{
		"totalDurationMs": time.Since(r.started).Milliseconds(),
	}
	for _, m := range r.phases {
		summary[string(m.Phase)+"DurationMs"] = m.Duration.Milliseconds()
	}
	return summary
}
