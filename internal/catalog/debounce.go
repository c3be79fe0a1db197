package catalog

import (
	"sync"
	"time"
)

// DebounceDelay is how long typing has to pause before a search fires.
const DebounceDelay = 500 * time.Millisecond

// Debouncer coalesces a burst of Schedule calls into one callback: each
// call cancels the pending one and re-arms the timer, so only the last
// function in a burst runs. A superseded timer never fires its callback,
// even if it already left the timer heap.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arms fn to run after the delay, cancelling any pending call.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	gen := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := gen != d.seq
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Stop cancels any pending call. The debouncer stays usable afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
