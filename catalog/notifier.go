package catalog

import (
	"time"

	"github.com/asaskevich/EventBus"
)

// TopicChanged is published after any write to the product table.
const TopicChanged = "catalog:changed"

// Change only says that something changed. Consumers re-list rather than apply deltas.
type Change struct {
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// Notifier fans catalog changes out to in-process subscribers.
type Notifier struct {
	bus EventBus.Bus
}

func NewNotifier() *Notifier {
	return &Notifier{bus: EventBus.New()}
}

// Publish announces a change. Asynchronous subscribers run on their own goroutines.
func (n *Notifier) Publish(reason string) {
	n.bus.Publish(TopicChanged, Change{Reason: reason, At: time.Now()})
}

// Subscribe registers fn for every change. Deliveries to one subscriber never overlap
// but may arrive out of publish order.
// The returned func removes the subscription.
func (n *Notifier) Subscribe(fn func(Change)) (func(), error) {
	if err := n.bus.SubscribeAsync(TopicChanged, fn, true); err != nil {
		return nil, err
	}
	return func() { _ = n.bus.Unsubscribe(TopicChanged, fn) }, nil
}

// Wait blocks until every asynchronous delivery queued so far has run.
func (n *Notifier) Wait() {
	n.bus.WaitAsync()
}
