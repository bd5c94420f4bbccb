package testutil

import (
	"sync"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// Notifier records what use cases hand to the notification layer.
type Notifier struct {
	mu         sync.Mutex
	dispatched []notify.Message
	published  []models.Notification
}

func (n *Notifier) Dispatch(msgs ...notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dispatched = append(n.dispatched, msgs...)
}

func (n *Notifier) Publish(ns ...models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, ns...)
}

func (n *Notifier) Dispatched() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.dispatched...)
}

func (n *Notifier) Published() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.published...)
}

// Audit records dispatched audit events.
type Audit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *Audit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *Audit) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}

var (
	_ notify.Notifier = (*Notifier)(nil)
	_ audit.Recorder  = (*Audit)(nil)
)
