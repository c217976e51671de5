package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Phase is the lifecycle tag of the most recent transition of a container
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseFulfilled
	PhaseRejected
)

// String returns the string representation of a Phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseFulfilled:
		return "fulfilled"
	case PhaseRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Status is the request lifecycle part of every snapshot
type Status struct {
	// Loading is true while at least one action is in flight
	Loading bool
	// Err is the error of the most recent rejected action, cleared by the next pending
	Err   error
	Phase Phase
}

// Listener is called after every state change
type Listener func()

// action performs a request and returns the reducer to apply on success
type action[S any] func(ctx context.Context) (func(*S), error)

// container is the shared engine behind Collection and Movies. data is only
// touched under mu.
type container[S any] struct {
	name   string
	logger zerolog.Logger

	mu         sync.Mutex
	data       S
	inFlight   int
	err        error
	phase      Phase
	generation uint64

	listenerMu sync.Mutex
	listeners  map[int]Listener
	nextID     int
}

func newContainer[S any](name string, logger zerolog.Logger) *container[S] {
	return &container[S]{
		name:      name,
		logger:    logger.With().Str("container", name).Logger(),
		listeners: make(map[int]Listener),
	}
}

// dispatch applies the pending phase, then runs fn on its own goroutine and
// settles with its result
func (c *container[S]) dispatch(ctx context.Context, name string, fn action[S]) *Task {
	task := newTask()

	c.mu.Lock()
	c.inFlight++
	c.err = nil
	c.phase = PhasePending
	gen := c.generation
	c.mu.Unlock()
	c.notify()

	go func() {
		apply, err := c.run(ctx, name, fn)
		c.settle(gen, name, apply, err)
		task.finish(err)
	}()

	return task
}

func (c *container[S]) run(ctx context.Context, name string, fn action[S]) (apply func(*S), err error) {
	defer func() {
		if r := recover(); r != nil {
			apply = nil
			err = fmt.Errorf("%w: %s: %v", ErrActionPanicked, name, r)
		}
	}()
	return fn(ctx)
}

func (c *container[S]) settle(gen uint64, name string, apply func(*S), err error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug().Str("action", name).Msg("Discarding result dispatched before reset")
		return
	}

	c.inFlight--
	if err != nil {
		c.err = err
		c.phase = PhaseRejected
	} else {
		if apply != nil {
			apply(&c.data)
		}
		c.phase = PhaseFulfilled
	}
	inFlight := c.inFlight
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("action", name).Msg("Action rejected")
	} else {
		c.logger.Debug().Str("action", name).Int("in_flight", inFlight).Msg("Action fulfilled")
	}
	c.notify()
}

// update applies a synchronous reducer
func (c *container[S]) update(fn func(*S)) {
	c.mu.Lock()
	fn(&c.data)
	c.mu.Unlock()
	c.notify()
}

// read calls fn with the data and status under the lock
func (c *container[S]) read(fn func(data *S, status Status)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data, Status{Loading: c.inFlight > 0, Err: c.err, Phase: c.phase})
}

func (c *container[S]) clearError() {
	c.mu.Lock()
	c.err = nil
	c.mu.Unlock()
	c.notify()
}

// reset empties the container. Actions still in flight settle without
// touching the new state.
func (c *container[S]) reset() {
	c.mu.Lock()
	var zero S
	c.data = zero
	c.inFlight = 0
	c.err = nil
	c.phase = PhaseIdle
	c.generation++
	c.mu.Unlock()
	c.notify()
}

func (c *container[S]) onChange(fn Listener) func() {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = fn

	return func() {
		c.listenerMu.Lock()
		delete(c.listeners, id)
		c.listenerMu.Unlock()
	}
}

func (c *container[S]) notify() {
	c.listenerMu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenerMu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
