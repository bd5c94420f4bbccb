package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Store persists notification rows.
type Store interface {
	CreateNotifications(ctx context.Context, ns []models.Notification) error
}

// Notifier is what use cases see. Both calls are fire-and-forget and are
// only made after the domain transaction has committed.
type Notifier interface {
	// Dispatch stores and then publishes new messages.
	Dispatch(msgs ...Message)
	// Publish delivers rows that were already stored in a transaction.
	Publish(ns ...models.Notification)
}

type job struct {
	persist bool
	items   []models.Notification
}

type Dispatcher struct {
	store Store
	pub   Publisher
	log   *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan job
	wg     sync.WaitGroup
}

func NewDispatcher(store Store, pub Publisher, log *zap.Logger, size int) *Dispatcher {
	if pub == nil {
		pub = NopPublisher{}
	}
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		store: store,
		pub:   pub,
		log:   log,
		queue: make(chan job, size),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.handle(j)
	}
}

func (d *Dispatcher) handle(j job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if j.persist {
		if err := d.store.CreateNotifications(ctx, j.items); err != nil {
			d.log.Error("notification store failed", zap.Int("count", len(j.items)), zap.Error(err))
			return
		}
	}

	for _, n := range j.items {
		if err := d.pub.Publish(ctx, n); err != nil {
			d.log.Warn("notification publish failed",
				zap.Uint("user_id", n.UserID),
				zap.String("type", n.Type),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msgs ...Message) {
	items := Notifications(msgs)
	if len(items) == 0 {
		return
	}
	d.enqueue(job{persist: true, items: items})
}

func (d *Dispatcher) Publish(ns ...models.Notification) {
	if len(ns) == 0 {
		return
	}
	d.enqueue(job{items: ns})
}

func (d *Dispatcher) enqueue(j job) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("notification dispatcher closed, dropping", zap.Int("count", len(j.items)))
		return
	}

	select {
	case d.queue <- j:
	default:
		// full queue: a lost notification must never fail the request
		d.log.Warn("notification queue full, dropping", zap.Int("count", len(j.items)))
	}
}

// Close stops accepting work and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
