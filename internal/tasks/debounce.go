package tasks

import (
	"context"
	"sync"
	"time"
)

const DefaultDebounce = 300 * time.Millisecond

// Debouncer delays work until input has been quiet for a fixed interval.
//
// Each new [Debouncer.Wait] or [Debouncer.Call] cancels the one pending before it.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewDebouncer creates a [Debouncer]. A non-positive delay uses [DefaultDebounce].
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Delay returns the quiet interval.
func (d *Debouncer) Delay() time.Duration { return d.delay }

// next cancels the pending wait and returns a context for a new one.
func (d *Debouncer) next(parent context.Context) (context.Context, context.CancelFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	d.cancel = cancel
	return ctx, cancel
}

// Wait blocks for the quiet interval. It returns true if no newer Wait or Call superseded it
// and ctx was not cancelled.
func (d *Debouncer) Wait(ctx context.Context) bool {
	wctx, cancel := d.next(ctx)
	defer cancel()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-wctx.Done():
		return false
	case <-timer.C:
		return wctx.Err() == nil
	}
}

// Call runs fn on its own goroutine after the quiet interval unless superseded or stopped first.
func (d *Debouncer) Call(fn func()) {
	ctx, cancel := d.next(context.Background())
	go func() {
		defer cancel()
		timer := time.NewTimer(d.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
		case <-timer.C:
			if ctx.Err() == nil {
				fn()
			}
		}
	}()
}

// Stop cancels any pending wait or call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
