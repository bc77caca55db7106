package notify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akashm011/Auth/internal/auth/domain"
)

const (
	defaultQueueSize = 64
	sendTimeout      = 30 * time.Second
)

// Dispatcher renders notices on the caller's goroutine and delivers them
// from a background worker so a slow mail relay never holds up a request.
// A full queue drops the notice and logs it.
type Dispatcher struct {
	Mailer   Mailer
	Renderer *Renderer
	Logger   *slog.Logger

	queue   chan Message
	stopCh  chan struct{}
	doneCh  chan struct{}
	started atomic.Bool

	// mu orders enqueue against Stop: once stopped is set under the write
	// lock, no sender can reach the queue behind the worker's final drain.
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a dispatcher with the given queue size. If size is
// 0 or negative, defaults to 64.
func NewDispatcher(mailer Mailer, renderer *Renderer, logger *slog.Logger, size int) *Dispatcher {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Dispatcher{
		Mailer:   mailer,
		Renderer: renderer,
		Logger:   logger,
		queue:    make(chan Message, size),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background delivery worker. Call Stop to drain and
// shut it down.
func (d *Dispatcher) Start() {
	if !d.started.CompareAndSwap(false, true) {
		return
	}
	go d.run()
	d.Logger.Info("notice dispatcher started", slog.Int("queue_size", cap(d.queue)))
}

// Stop delivers whatever is already queued and waits for the worker to exit.
// A dispatcher that was never started drains its queue on the caller's
// goroutine.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.stopCh)
	}
	d.mu.Unlock()

	if d.started.CompareAndSwap(false, true) {
		d.run()
	}
	<-d.doneCh
	d.Logger.Info("notice dispatcher stopped")
}

func (d *Dispatcher) NotifyInvitation(ctx context.Context, n domain.InvitationNotice) {
	msg, err := d.Renderer.Invitation(n)
	if err != nil {
		d.Logger.Error("failed to render invitation notice", slog.Any("error", err))
		return
	}
	d.enqueue(msg)
}

func (d *Dispatcher) NotifyCredentials(ctx context.Context, n domain.CredentialsNotice) {
	msg, err := d.Renderer.Credentials(n)
	if err != nil {
		d.Logger.Error("failed to render credentials notice", slog.Any("error", err))
		return
	}
	d.enqueue(msg)
}

func (d *Dispatcher) enqueue(msg Message) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.Logger.Warn("notice dropped, dispatcher stopped", slog.String("subject", msg.Subject))
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.Logger.Warn("notice dropped, queue full", slog.String("subject", msg.Subject))
	}
}

// run is the main background worker loop.
func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		case <-d.stopCh:
			for {
				select {
				case msg := <-d.queue:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.Mailer.Send(ctx, msg); err != nil {
		d.Logger.Error("failed to deliver notice",
			slog.String("subject", msg.Subject),
			slog.Any("error", err),
		)
		return
	}
	d.Logger.Debug("notice delivered", slog.String("subject", msg.Subject))
}
