package inmemory

import (
	"sync"
	"time"

	"github.com/jaekimandy/devops-demo/domain"
)

const (
	// Capacity of the rolling request window. Only the most recent
	// windowCapacity samples contribute to the derived statistics.
	windowCapacity = 1000
)

// --- Store Implementation ---

// Store is a thread-safe in-memory aggregator for request timing. It
// keeps the most recent request durations in a bounded FIFO window and
// anchors the process start time for uptime derivation.
// It implements the domain.Window interface.
var _ domain.Window = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	window *sampleRing
	start  time.Time
}

// NewStore creates a Store with the default window capacity. The start
// time is captured once here and never changes for the process
// lifetime.
func NewStore() *Store {
	return newStoreWithCapacity(windowCapacity)
}

func newStoreWithCapacity(capacity int) *Store {
	return &Store{
		window: newSampleRing(capacity),
		start:  time.Now(),
	}
}

// Record appends a request duration to the window, evicting the oldest
// sample first once the window is full. Negative durations are clamped
// to zero.
func (s *Store) Record(d time.Duration) {
	if d < 0 {
		d = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.add(d.Seconds())
}

// Size reports how many samples the window currently holds.
func (s *Store) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window.len()
}

// Average returns the arithmetic mean of the windowed durations in
// seconds, or 0 for an empty window.
func (s *Store) Average() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.window.len()
	if n == 0 {
		return 0
	}

	var sum float64
	s.window.each(func(v float64) {
		sum += v
	})
	return sum / float64(n)
}

// PerSecond divides the current window population by elapsedSeconds.
// It returns 0 when elapsedSeconds <= 0 so callers never divide by
// zero.
func (s *Store) PerSecond(elapsedSeconds float64) float64 {
	if elapsedSeconds <= 0 {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return float64(s.window.len()) / elapsedSeconds
}

// Uptime reports wall-clock time since the store was created.
func (s *Store) Uptime() time.Duration {
	return time.Since(s.start)
}

// StartTime returns the instant the store was created.
func (s *Store) StartTime() time.Time {
	return s.start
}

// --- Ring Buffer for Samples ---

// sampleRing is a fixed-capacity circular buffer of duration samples in
// seconds. Insertion order is preserved and the oldest sample is
// overwritten first when full. Locking is handled by the parent Store.
type sampleRing struct {
	buffer []float64
	size   int
	start  int
	count  int
}

func newSampleRing(size int) *sampleRing {
	return &sampleRing{
		buffer: make([]float64, size),
		size:   size,
	}
}

// add inserts a sample, overwriting the oldest if the ring is full.
func (r *sampleRing) add(v float64) {
	index := (r.start + r.count) % r.size
	r.buffer[index] = v
	if r.count < r.size {
		r.count++
	} else {
		r.start = (r.start + 1) % r.size
	}
}

func (r *sampleRing) len() int {
	return r.count
}

// each visits the samples in insertion order, oldest first.
func (r *sampleRing) each(fn func(v float64)) {
	for i := 0; i < r.count; i++ {
		fn(r.buffer[(r.start+i)%r.size])
	}
}
