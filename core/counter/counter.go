// Package counter tracks how many range predictions have been served. The
// value survives restarts through a Backend and is shown on the dashboard.
package counter

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/ecoamp/core/logger"
	"github.com/kilianp07/ecoamp/internal/eventbus"
)

// DefaultValue is reported when nothing has been persisted yet.
const DefaultValue int64 = 1000

// DefaultKey is the storage key of the counter.
const DefaultKey = "ecoamp_prediction_count"

// observerBuffer is the number of events an observer can lag behind.
const observerBuffer = 64

// Backend persists the counter value.
type Backend interface {
	// Load returns the stored value and whether one exists.
	Load(ctx context.Context) (int64, bool, error)
	Save(ctx context.Context, v int64) error
	Close() error
}

// Event is published after each successful increment.
type Event struct {
	Value int64
	Time  time.Time
}

// Counter wraps a Backend with the recovery rules of the dashboard: reads
// fall back to the last known value and failed writes leave the count as is.
type Counter struct {
	backend Backend
	log     logger.Logger
	bus     *eventbus.TypedBus[Event]

	mu   sync.Mutex
	last int64
}

// New creates a Counter on top of b. A nil logger disables logging.
func New(b Backend, log logger.Logger) *Counter {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Counter{
		backend: b,
		log:     log,
		bus:     eventbus.NewTypedWithBuffer[Event](observerBuffer),
		last:    DefaultValue,
	}
}

// Get returns the persisted value, DefaultValue when absent, or the last
// known value when the backend cannot be read.
func (c *Counter) Get(ctx context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *Counter) load(ctx context.Context) int64 {
	v, ok, err := c.backend.Load(ctx)
	if err != nil {
		c.log.Warnf("counter read failed, using %d: %v", c.last, err)
		return c.last
	}
	if !ok {
		v = DefaultValue
	}
	c.last = v
	return v
}

// Increment persists current+1 and returns it. When the write fails the
// current value is returned unchanged and no event is published. Events are
// published under the lock so observers see values in increment order.
func (c *Counter) Increment(ctx context.Context) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.load(ctx)
	next := cur + 1
	if err := c.backend.Save(ctx, next); err != nil {
		c.log.Warnf("counter write failed, keeping %d: %v", cur, err)
		return cur
	}
	c.last = next
	c.bus.Publish(Event{Value: next, Time: time.Now()})
	return next
}

// Subscribe returns a channel receiving an Event per successful increment.
func (c *Counter) Subscribe() <-chan Event { return c.bus.Subscribe() }

// Unsubscribe stops delivery to ch and closes it.
func (c *Counter) Unsubscribe(ch <-chan Event) { c.bus.Unsubscribe(ch) }

// Close releases observers and the backend.
func (c *Counter) Close() error {
	c.bus.Close()
	return c.backend.Close()
}
