package services

import (
	"log/slog"
	"sync"
	"time"
)

const defaultRefreshInterval = 5 * time.Second

// RefreshCallback receives one synthetic payload per tick.
type RefreshCallback func(data any)

type subscription struct {
	widgetType string
	fn         RefreshCallback
}

// RefreshBus drives widget refresh from a single shared ticker: the first
// subscriber starts it, the last unsubscribe stops it, and there is never
// more than one ticker no matter how many widgets are live. It is an
// explicit, injectable instance — construct one per process in cmd (or one
// per test) and pass it by reference.
type RefreshBus struct {
	log      *slog.Logger
	interval time.Duration

	mu   sync.Mutex
	subs map[string]subscription
	stop chan struct{} // non-nil while the ticker goroutine runs
}

func NewRefreshBus(interval time.Duration, log *slog.Logger) *RefreshBus {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &RefreshBus{
		log:      log,
		interval: interval,
		subs:     make(map[string]subscription),
	}
}

// Subscribe registers the callback for a widget. The widget's type is passed
// explicitly so the payload shape never depends on how the id happens to be
// spelled. Re-subscribing an id replaces the prior callback; a widget holds
// at most one subscription.
func (b *RefreshBus) Subscribe(widgetID, widgetType string, fn RefreshCallback) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subs[widgetID] = subscription{widgetType: widgetType, fn: fn}
	if b.stop == nil {
		b.stop = make(chan struct{})
		go b.run(b.stop)
	}
}

// Unsubscribe removes the widget's callback and stops the ticker on the
// transition to zero subscribers, so no idle ticker outlives its observers.
func (b *RefreshBus) Unsubscribe(widgetID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[widgetID]; !ok {
		return
	}
	delete(b.subs, widgetID)
	if len(b.subs) == 0 && b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

// Subscribers returns the current subscription count.
func (b *RefreshBus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Running reports whether the shared ticker is active.
func (b *RefreshBus) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}

// InitialData generates a first value synchronously so a widget can render
// before the first tick. Text widgets (and unknown types) have no live data.
func (b *RefreshBus) InitialData(widgetType string) any {
	return generateData(widgetType)
}

func (b *RefreshBus) run(stop chan struct{}) {
	t := time.NewTicker(b.interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			b.fanOut()
		}
	}
}

// fanOut delivers one payload per subscriber. Delivery happens outside the
// lock on a snapshot, so callbacks may freely re-subscribe or unsubscribe.
func (b *RefreshBus) fanOut() {
	b.mu.Lock()
	snapshot := make(map[string]subscription, len(b.subs))
	for id, sub := range b.subs {
		snapshot[id] = sub
	}
	b.mu.Unlock()

	for id, sub := range snapshot {
		b.deliver(id, sub)
	}
}

// deliver isolates a single callback: one panicking subscriber must not
// starve the rest of the tick.
func (b *RefreshBus) deliver(widgetID string, sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("refresh callback panicked", "widget_id", widgetID, "panic", r)
		}
	}()
	data := generateData(sub.widgetType)
	if data != nil {
		sub.fn(data)
	}
}
