package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
)

var (
	ErrQueueFull         = errs.New("notification queue full")
	ErrDispatcherStopped = errs.New("notification dispatcher stopped")
	ErrInvalidMessage    = errs.New("notification has no recipient or subject")
)

// Transport performs one delivery attempt.
type Transport interface {
	Send(ctx context.Context, msg Message) error
	Close() error
}

// DeadLetterSink records messages that could not be delivered.
type DeadLetterSink interface {
	Store(ctx context.Context, msg Message, attempts int, lastErr error) error
}

// overflowSize bounds the messages waiting to be dead-lettered after the queue
// rejected them. Anything beyond it is only logged.
const overflowSize = 16

// Dispatcher owns a bounded queue drained by a fixed pool of workers. Enqueue
// never blocks; each message is retried with linear backoff and dead-lettered
// once its attempts run out.
type Dispatcher struct {
	cfg         config.NotificationConfig
	transport   Transport
	deadLetters DeadLetterSink

	mu      sync.RWMutex
	stopped bool
	queue   chan Message
	// overflow holds rejected messages for the single dead-letter writer
	overflow chan Message
	workers  sync.WaitGroup
	// quit cuts retry backoff short during shutdown
	quit chan struct{}
}

func NewDispatcher(cfg config.NotificationConfig, transport Transport, deadLetters DeadLetterSink) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	return &Dispatcher{
		cfg:         cfg,
		transport:   transport,
		deadLetters: deadLetters,
		queue:       make(chan Message, cfg.QueueSize),
		overflow:    make(chan Message, overflowSize),
		quit:        make(chan struct{}),
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.workers.Add(1)
		go d.run(i)
	}
	d.workers.Add(1)
	go d.drainOverflow()
	slog.Info("notification dispatcher started", "workers", d.cfg.Workers, "queue_size", d.cfg.QueueSize)
}

func (d *Dispatcher) Enqueue(msg Message) error {
	if !msg.valid() {
		return errs.Wrapf(ErrInvalidMessage, "kind %s", msg.Kind)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- msg:
		return nil
	default:
	}

	select {
	case d.overflow <- msg:
	default:
		slog.Error("notification dropped", "kind", msg.Kind, "to", msg.To, "error", ErrQueueFull)
	}
	return errs.Wrapf(ErrQueueFull, "kind %s to %s", msg.Kind, msg.To)
}

// Stop refuses new messages and waits for queued ones to be processed or for
// ctx to end, whichever comes first.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	close(d.queue)
	close(d.overflow)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.workers.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		close(d.quit)
		<-done
	}
	return d.transport.Close()
}

func (d *Dispatcher) run(worker int) {
	defer d.workers.Done()
	for msg := range d.queue {
		d.deliver(worker, msg)
	}
}

func (d *Dispatcher) drainOverflow() {
	defer d.workers.Done()
	for msg := range d.overflow {
		d.deadLetter(msg, 0, ErrQueueFull)
	}
}

func (d *Dispatcher) deliver(worker int, msg Message) {
	var lastErr error
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		lastErr = d.attempt(msg)
		if lastErr == nil {
			slog.Debug("notification sent", "worker", worker, "kind", msg.Kind, "to", msg.To, "attempt", attempt)
			return
		}
		slog.Warn("notification attempt failed",
			"worker", worker,
			"kind", msg.Kind,
			"to", msg.To,
			"attempt", attempt,
			"error", lastErr,
		)
		if attempt == d.cfg.MaxAttempts {
			break
		}
		select {
		case <-time.After(d.cfg.RetryBackoff * time.Duration(attempt)):
		case <-d.quit:
			d.deadLetter(msg, attempt, lastErr)
			return
		}
	}
	d.deadLetter(msg, d.cfg.MaxAttempts, lastErr)
}

func (d *Dispatcher) attempt(msg Message) error {
	ctx := context.Background()
	if d.cfg.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.SendTimeout)
		defer cancel()
	}
	return d.transport.Send(ctx, msg)
}

func (d *Dispatcher) deadLetter(msg Message, attempts int, lastErr error) {
	slog.Error("notification dead-lettered",
		"kind", msg.Kind,
		"to", msg.To,
		"attempts", attempts,
		"error", lastErr,
	)
	if d.deadLetters == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.deadLetters.Store(ctx, msg, attempts, lastErr); err != nil {
		slog.Error("failed to store dead letter", "kind", msg.Kind, "to", msg.To, "error", err)
	}
}
