package ingestion

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressTracker reports how far embedding of menu items has come. Pool
// workers call BatchDone and Retried concurrently.
type ProgressTracker struct {
	mu sync.Mutex
	w  io.Writer

	items, batches int
	doneItems      int
	doneBatches    int
	retries        int

	// a line is written once every items have accrued since the last one
	every    int
	reported int

	start   time.Time
	running bool
}

// NewProgressTracker tracks items menu items split into batches batches,
// writing a line every time at least every items complete.
func NewProgressTracker(w io.Writer, items, batches, every int) *ProgressTracker {
	return &ProgressTracker{w: w, items: items, batches: batches, every: max(every, 1)}
}

// Start resets the counters and starts the clock.
func (p *ProgressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start = time.Now()
	p.running = true
	p.doneItems, p.doneBatches, p.retries, p.reported = 0, 0, 0, 0
}

// BatchDone records a finished batch of n items.
func (p *ProgressTracker) BatchDone(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.doneItems = min(p.doneItems+n, p.items)
	p.doneBatches = min(p.doneBatches+1, p.batches)
	if p.doneItems-p.reported >= p.every {
		p.write()
		p.reported = p.doneItems
	}
}

// Retried records one more attempt at a failed batch.
func (p *ProgressTracker) Retried() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.retries++
	}
}

// Finish writes the final line and ends the output with a newline.
func (p *ProgressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.running {
		return
	}
	p.doneItems, p.doneBatches = p.items, p.batches
	p.write()
	fmt.Fprintln(p.w)
	p.running = false
}

// Elapsed returns the time since Start, or 0 if it was never called.
func (p *ProgressTracker) Elapsed() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.start.IsZero() {
		return 0
	}
	return time.Since(p.start)
}

// Retries returns how many batch retries were recorded.
func (p *ProgressTracker) Retries() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retries
}

// write must be called with mu held.
func (p *ProgressTracker) write() {
	pct := 100.0
	if p.items > 0 {
		pct = float64(p.doneItems) * 100 / float64(p.items)
	}
	rate := float64(p.doneItems) / max(time.Since(p.start).Seconds(), 1e-9)
	fmt.Fprintf(p.w, "\rEmbedding menu items: %d/%d (%.1f%%), batch %d/%d, %.1f items/s",
		p.doneItems, p.items, pct, p.doneBatches, p.batches, rate)
	if p.retries > 0 {
		fmt.Fprintf(p.w, ", %d retries", p.retries)
	}
}
