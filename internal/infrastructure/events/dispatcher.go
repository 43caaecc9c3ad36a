package events

import (
	"context"
	"errors"
	"sync"

	"skill-passport/internal/logging"
)

var (
	ErrQueueFull        = errors.New("event queue full")
	ErrDispatcherClosed = errors.New("event dispatcher closed")
)

type task struct {
	ctx context.Context
	evt SkillEvent
}

// Dispatcher publishes events on a fixed pool of workers so callers only pay
// for an enqueue. Publishing never blocks: a full queue drops the event and
// reports ErrQueueFull.
type Dispatcher struct {
	next   Publisher
	logger logging.Logger

	mu     sync.RWMutex
	closed bool
	tasks  chan task
	wg     sync.WaitGroup
}

var _ Publisher = (*Dispatcher)(nil)

func NewDispatcher(next Publisher, workers, buffer int, logger logging.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if logger == nil {
		logger = logging.Discard()
	}

	d := &Dispatcher{
		next:   next,
		logger: logger,
		tasks:  make(chan task, buffer),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work()
	}
	return d
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for t := range d.tasks {
		if err := d.next.PublishSkillEvent(t.ctx, t.evt); err != nil {
			d.logger.Warn(t.ctx, "publish skill event failed",
				"type", t.evt.Type,
				"skill_id", t.evt.SkillID,
				"error", err,
			)
		}
	}
}

// PublishSkillEvent enqueues evt. The event outlives ctx's cancellation but
// keeps its values.
func (d *Dispatcher) PublishSkillEvent(ctx context.Context, evt SkillEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.tasks <- task{ctx: context.WithoutCancel(ctx), evt: evt}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events, drains the queue and closes the wrapped
// publisher.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
	return d.next.Close()
}
