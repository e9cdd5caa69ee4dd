package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// ErrDispatcherClosed is returned when an event arrives after Close.
var ErrDispatcherClosed = errors.New("audit dispatcher is closed")

// Recorder observes delivery outcomes.
type Recorder interface {
	RecordAudit(err error)
	RecordAuditDropped()
}

// Dispatcher makes a Notifier asynchronous. Each event gets exactly one
// delivery attempt on a background worker; Notify never blocks the caller.
type Dispatcher struct {
	sink     usecase.Notifier
	logger   zerolog.Logger
	recorder Recorder
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	queue  chan domain.AuditEvent
	wg     sync.WaitGroup
}

// DispatcherConfig for Dispatcher.
type DispatcherConfig struct {
	Sink      usecase.Notifier
	Logger    zerolog.Logger
	Recorder  Recorder
	Timeout   time.Duration // Per-delivery timeout
	QueueSize int
	Workers   int
}

// NewDispatcher creates a Dispatcher and starts its workers.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = usecase.DefaultNotifyTimeout
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Workers == 0 {
		cfg.Workers = 4
	}

	d := &Dispatcher{
		sink:     cfg.Sink,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
		timeout:  cfg.Timeout,
		queue:    make(chan domain.AuditEvent, cfg.QueueSize),
	}

	d.wg.Add(cfg.Workers)
	for range cfg.Workers {
		go d.work()
	}

	return d
}

// Notify enqueues the event. A full queue drops the event.
func (d *Dispatcher) Notify(_ context.Context, event domain.AuditEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- event:
	default:
		if d.recorder != nil {
			d.recorder.RecordAuditDropped()
		}
		d.logger.Warn().
			Str("user", event.User).
			Str("type", string(event.Type)).
			Msg("audit queue full, event dropped")
	}

	return nil
}

// Close stops accepting events and waits for queued deliveries until ctx
// is done.
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

func (d *Dispatcher) work() {
	defer d.wg.Done()

	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.AuditEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	err := d.sink.Notify(ctx, event)
	if d.recorder != nil {
		d.recorder.RecordAudit(err)
	}

	if err != nil {
		d.logger.Error().
			Err(err).
			Str("user", event.User).
			Str("type", string(event.Type)).
			Msg("failed to deliver audit event")
	}
}
