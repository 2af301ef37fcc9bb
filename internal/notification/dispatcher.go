package notification

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/ecorewards-server/internal/logger"
	"github.com/dtroode/ecorewards-server/internal/model"
)

var _ model.Notifier = (*Dispatcher)(nil)

const sendTimeout = 15 * time.Second

// Dispatcher queues events and delivers them from a fixed pool of workers.
type Dispatcher struct {
	queue  chan model.Event
	mailer Mailer
	logger *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher starts workers goroutines reading from a queue of queueSize.
func NewDispatcher(mailer Mailer, queueSize, workers int, logger *logger.Logger) *Dispatcher {
	d := &Dispatcher{
		queue:  make(chan model.Event, queueSize),
		mailer: mailer,
		logger: logger,
	}

	for range workers {
		d.wg.Add(1)
		go d.work()
	}

	return d
}

// Notify enqueues event without blocking. When the queue is full or the
// dispatcher is closed the event is dropped and logged.
func (d *Dispatcher) Notify(_ context.Context, event model.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher: dropping event after close",
			"template", event.Template,
			"recipient", event.Recipient)
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Warn("Dispatcher: queue full, dropping event",
			"template", event.Template,
			"recipient", event.Recipient)
	}
}

func (d *Dispatcher) work() {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event model.Event) {
	msg, err := Render(event)
	if err != nil {
		d.logger.Error("Dispatcher: failed to render event",
			"template", event.Template,
			"error", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		d.logger.Warn("Dispatcher: delivery failed",
			"template", event.Template,
			"recipient", event.Recipient,
			"error", err.Error())
		return
	}

	d.logger.Debug("Dispatcher: event delivered",
		"template", event.Template,
		"recipient", event.Recipient)
}

// Close stops accepting events and waits for queued ones to be delivered or
// for ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
