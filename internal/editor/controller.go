package editor

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// LoadPolicy decides what happens when Load is triggered while an earlier
// read is still in flight.
type LoadPolicy int

const (
	// CancelPrevious cancels the earlier read; only the newest load commits.
	CancelPrevious LoadPolicy = iota
	// RejectWhileInFlight refuses new loads until the pending read completes.
	RejectWhileInFlight
)

var loadPolicyNames = map[LoadPolicy]string{
	CancelPrevious:      "cancel-previous",
	RejectWhileInFlight: "reject-while-in-flight",
}

func (p LoadPolicy) String() string {
	if name, ok := loadPolicyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("LoadPolicy(%d)", int(p))
}

// ParseLoadPolicy converts a policy name as written in riscpad.yml.
// The empty string selects CancelPrevious.
func ParseLoadPolicy(s string) (LoadPolicy, error) {
	if s == "" {
		return CancelPrevious, nil
	}
	for p, name := range loadPolicyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown load policy %q (use %q or %q)", s, CancelPrevious, RejectWhileInFlight)
}

// ErrLoadSuperseded is reported by a LoadTask whose result was discarded
// because a newer load started.
var ErrLoadSuperseded = errors.New("load superseded by a newer load")

// Controller owns a State and serialises every operation on it. Reads
// started by Load run on their own goroutine and commit through the
// controller, so front-ends never touch the State directly.
type Controller struct {
	asm      Assembler
	policy   LoadPolicy
	onChange func(Change)

	mu       sync.Mutex
	state    State
	gen      uint64
	cancel   context.CancelFunc
	inflight *LoadTask

	// notifyMu serialises onChange; notified is the newest generation
	// delivered so far.
	notifyMu sync.Mutex
	notified uint64
}

// Change is passed to the WithOnChange callback after a load commits.
type Change struct {
	State State
	// Loaded is set when the file text replaced the input surface. After a
	// failed read only State.Status is new and the input must be left alone.
	Loaded bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLoadPolicy sets the concurrent load policy (default CancelPrevious).
func WithLoadPolicy(p LoadPolicy) Option {
	return func(c *Controller) { c.policy = p }
}

// WithInput replaces the initial input surface contents.
func WithInput(text string) Option {
	return func(c *Controller) { c.state.Input = text }
}

// WithOnChange registers fn to be called after a load commits. fn runs on
// the loading goroutine without the state lock held. Calls never overlap,
// and once a load's change has been delivered no older load's is.
func WithOnChange(fn func(Change)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// NewController returns a controller whose input holds DefaultSource.
func NewController(a Assembler, opts ...Option) *Controller {
	c := &Controller{
		asm:   a,
		state: *NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetInput records a user edit of the input surface.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	c.state.Input = text
	c.mu.Unlock()
}

// Policy returns the configured load policy.
func (c *Controller) Policy() LoadPolicy { return c.policy }

// Loading reports whether a read is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}

// InFlight returns the name of the file being read, or "" when idle.
func (c *Controller) InFlight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight == nil {
		return ""
	}
	return c.inflight.name
}

// Assemble runs the assembler on the current input. See Assemble.
func (c *Controller) Assemble() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Assemble(&c.state, c.asm)
}

// Save exports the current input. See Save.
func (c *Controller) Save() Export {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Save(c.state)
}

// LoadTask is an asynchronous read started by Load.
type LoadTask struct {
	name string
	done chan struct{}
	err  error
}

// Name returns the name of the file being read.
func (t *LoadTask) Name() string { return t.name }

// Done is closed once the task has committed or been discarded.
func (t *LoadTask) Done() <-chan struct{} { return t.done }

// Wait blocks until the task completes. It returns nil if the file text was
// committed to the input surface, a *LoadError if the read failed,
// ErrLoadSuperseded if a newer load won, or the context error if the
// caller's context was cancelled.
func (t *LoadTask) Wait() error {
	<-t.done
	return t.err
}

// Load starts reading f. With a nil f nothing happens and Load returns
// (nil, nil). On success the input surface is replaced by the file text;
// on failure it is left alone and Status describes the error. The output
// surface is never touched.
func (c *Controller) Load(ctx context.Context, f File) (*LoadTask, error) {
	if f == nil {
		return nil, nil
	}

	c.mu.Lock()
	if c.inflight != nil {
		if c.policy == RejectWhileInFlight {
			c.mu.Unlock()
			return nil, ErrLoadInFlight
		}
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(ctx)
	task := &LoadTask{name: f.Name(), done: make(chan struct{})}
	c.cancel = cancel
	c.inflight = task
	c.mu.Unlock()

	go c.runLoad(ctx, cancel, gen, f, task)
	return task, nil
}

func (c *Controller) runLoad(ctx context.Context, cancel context.CancelFunc, gen uint64, f File, task *LoadTask) {
	defer cancel()

	text, err := f.ReadText(ctx)

	c.mu.Lock()
	current := gen == c.gen
	committed, loaded := false, false
	switch {
	case !current:
		task.err = ErrLoadSuperseded
	case ctx.Err() != nil:
		task.err = ctx.Err()
	case err != nil:
		lerr := &LoadError{Name: f.Name(), Err: err}
		c.state.Status = LoadErrorPrefix + lerr.Error()
		task.err = lerr
		committed = true
	default:
		c.state.Input = text
		c.state.Status = ""
		committed, loaded = true, true
	}
	if current {
		c.inflight = nil
		c.cancel = nil
	}
	st := c.state
	c.mu.Unlock()

	close(task.done)
	if committed && c.onChange != nil {
		c.notify(gen, Change{State: st, Loaded: loaded})
	}
}

// notify delivers ch unless a newer load has already been delivered, so a
// slow callback for one load cannot land after the next one's.
func (c *Controller) notify(gen uint64, ch Change) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if gen < c.notified {
		return
	}
	c.notified = gen
	c.onChange(ch)
}
