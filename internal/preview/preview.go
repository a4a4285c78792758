// Package preview debounces live prompt generation while the user types.
//
// Submit restarts a quiet-period timer. When it fires, the latest input runs
// in its own goroutine and the result is delivered only if no newer input
// has been delivered since, so a slow run never overwrites a fresher one.
package preview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// DefaultDelay is the quiet period before a preview runs.
const DefaultDelay = 500 * time.Millisecond

// Input is one snapshot of the compose form.
type Input struct {
	Problem  string
	Category category.Category
	Tone     tone.Tone
}

// Update is a delivered preview. Result is nil when the input was empty.
type Update struct {
	Seq    uint64
	Result *pipeline.Result
}

// RunFunc produces a preview for an input.
type RunFunc func(ctx context.Context, in Input) pipeline.Result

// FromGenerator adapts a Generator's context-aware path to a RunFunc.
func FromGenerator(g *pipeline.Generator) RunFunc {
	return func(ctx context.Context, in Input) pipeline.Result {
		return g.GenerateContext(ctx, in.Problem, in.Category, in.Tone)
	}
}

// Debouncer schedules preview runs.
// The deliver callback must not call back into the Debouncer.
type Debouncer struct {
	delay   time.Duration
	run     RunFunc
	deliver func(Update)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	timer     *time.Timer
	seq       uint64 // last submitted
	pending   *Input // not yet run
	delivered uint64 // last delivered
	stopped   bool

	deliverMu sync.Mutex // orders check-and-deliver
}

// New creates a Debouncer. A non-positive delay uses DefaultDelay.
func New(delay time.Duration, run RunFunc, deliver func(Update)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Debouncer{
		delay:   delay,
		run:     run,
		deliver: deliver,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Submit records in as the latest input and restarts the quiet period.
// Empty input cancels any pending run and delivers a cleared preview now.
// Returns the sequence number assigned to in.
func (d *Debouncer) Submit(in Input) uint64 {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return 0
	}
	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if strings.TrimSpace(in.Problem) == "" {
		d.pending = nil
		d.mu.Unlock()
		d.publish(seq, nil)
		return seq
	}

	d.pending = &in
	d.timer = time.AfterFunc(d.delay, func() { d.fire(seq) })
	d.mu.Unlock()
	return seq
}

// Flush runs the pending input immediately and waits for its delivery.
// Reports whether there was anything to run.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	if d.stopped || d.pending == nil {
		d.mu.Unlock()
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	in, seq := *d.pending, d.seq
	d.pending = nil
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.execute(seq, in)
	return true
}

// Stop cancels the pending timer, cancels in-flight runs and waits for them.
// Submit and Flush are no-ops afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}

// fire runs on the timer goroutine.
func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if d.stopped || d.pending == nil || d.seq != seq {
		d.mu.Unlock()
		return
	}
	in := *d.pending
	d.pending = nil
	d.timer = nil
	d.wg.Add(1)
	d.mu.Unlock()

	defer d.wg.Done()
	d.execute(seq, in)
}

func (d *Debouncer) execute(seq uint64, in Input) {
	res := d.run(d.ctx, in)
	if d.ctx.Err() != nil {
		return
	}
	d.publish(seq, &res)
}

// publish delivers res unless a newer sequence was already delivered.
func (d *Debouncer) publish(seq uint64, res *pipeline.Result) {
	d.deliverMu.Lock()
	defer d.deliverMu.Unlock()

	d.mu.Lock()
	if seq <= d.delivered {
		d.mu.Unlock()
		return
	}
	d.delivered = seq
	d.mu.Unlock()

	if d.deliver != nil {
		d.deliver(Update{Seq: seq, Result: res})
	}
}
