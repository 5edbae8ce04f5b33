package editor

import (
	"context"
	"sync"
	"time"

	"pinboard-cli/internal/board"
)

// DefaultSaveDebounce is how long the saver waits after the last edit
// before writing the board state.
const DefaultSaveDebounce = 650 * time.Millisecond

// DebouncedSaver coalesces rapid edits into one save. Notify records the
// latest state and (re)arms the timer; the save runs off the caller's
// goroutine once edits go quiet.
type DebouncedSaver struct {
	debounce time.Duration
	save     func(ctx context.Context, state board.State) error
	onError  func(err error)

	mu      sync.Mutex
	idle    *sync.Cond
	timer   *time.Timer
	pending bool
	running bool
	latest  board.State
}

type DebouncedSaverOpts struct {
	Debounce time.Duration
	Save     func(ctx context.Context, state board.State) error
	// OnError receives save failures; nil drops them.
	OnError func(err error)
}

func NewDebouncedSaver(opts DebouncedSaverOpts) *DebouncedSaver {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultSaveDebounce
	}
	d := &DebouncedSaver{
		debounce: debounce,
		save:     opts.Save,
		onError:  opts.OnError,
	}
	d.idle = sync.NewCond(&d.mu)
	return d
}

func (d *DebouncedSaver) Notify(state board.State) {
	if d == nil {
		return
	}

	d.mu.Lock()
	d.pending = true
	d.latest = state.Clone()
	if d.timer == nil {
		d.timer = time.AfterFunc(d.debounce, d.onTimer)
		d.mu.Unlock()
		return
	}
	d.timer.Reset(d.debounce)
	d.mu.Unlock()
}

// Flush writes any pending state immediately. Used on shutdown so the
// last burst of edits is not lost to the debounce window. An in-flight
// timer save is waited out first: otherwise an older state could land
// after Flush returns and overwrite the newer one.
func (d *DebouncedSaver) Flush(ctx context.Context) error {
	if d == nil {
		return nil
	}

	d.mu.Lock()
	for d.running {
		d.idle.Wait()
	}
	if !d.pending {
		d.mu.Unlock()
		return nil
	}
	d.pending = false
	d.running = true
	state := d.latest
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	err := d.save(ctx, state)

	d.mu.Lock()
	d.running = false
	d.idle.Broadcast()
	if d.pending && d.timer != nil {
		d.timer.Reset(d.debounce)
	}
	d.mu.Unlock()
	return err
}

func (d *DebouncedSaver) onTimer() {
	d.mu.Lock()
	if d.running {
		// Another save is in-flight; run again once it finishes.
		if d.timer != nil {
			d.timer.Reset(d.debounce)
		}
		d.mu.Unlock()
		return
	}
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.running = true
	state := d.latest
	d.mu.Unlock()

	if err := d.save(context.Background(), state); err != nil && d.onError != nil {
		d.onError(err)
	}

	d.mu.Lock()
	d.running = false
	d.idle.Broadcast()
	if d.pending && d.timer != nil {
		d.timer.Reset(d.debounce)
	}
	d.mu.Unlock()
}
