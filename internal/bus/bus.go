// Package bus fans collection-change signals out to subscribers. A save on a
// collection publishes its topic; subscribers re-fetch through the store,
// because no value travels on the channel. Two signal sources feed the same
// callbacks: in-process publishes, and, when a redis client is attached,
// publishes performed by sibling processes on the same topic channel.
package bus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

// Bus delivers no-payload change notifications per topic. A nil *Bus is valid
// and inert: Subscribe returns a no-op unsubscribe and Publish does nothing.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string]map[int]func()
	nextID int

	// origin tags this process's redis publishes so its own echo is dropped,
	// matching local delivery happening exactly once per save.
	origin string
	rdb    *redis.Client
	pubsub *redis.PubSub
	lg     *zap.SugaredLogger
}

// New builds an in-process bus. rdb may be nil, in which case cross-process
// signals are disabled and the bus is purely local.
func New(rdb *redis.Client, lg *zap.SugaredLogger) *Bus {
	b := &Bus{
		subs:   make(map[string]map[int]func()),
		origin: uuid.NewString(),
		rdb:    rdb,
		lg:     lg,
	}
	if rdb != nil {
		// Subscribe with no channels; topics are added as subscribers arrive.
		b.pubsub = rdb.Subscribe(context.Background())
		go b.relay()
	}
	return b
}

// Subscribe registers fn for topic and returns an idempotent unsubscribe that
// detaches both signal sources.
func (b *Bus) Subscribe(topic string, fn func()) func() {
	if b == nil {
		return func() {}
	}
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]func())
	}
	b.subs[topic][id] = fn
	first := len(b.subs[topic]) == 1
	b.mu.Unlock()

	if first && b.pubsub != nil {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := b.pubsub.Subscribe(ctx, topic); err != nil && b.lg != nil {
			b.lg.Warnw("bus channel subscribe failed", "topic", topic, "error", err)
		}
	}

	return func() {
		b.mu.Lock()
		var last bool
		if m, ok := b.subs[topic]; ok {
			if _, ok := m[id]; ok {
				delete(m, id)
				last = len(m) == 0
				if last {
					delete(b.subs, topic)
				}
			}
		}
		b.mu.Unlock()
		if last && b.pubsub != nil {
			ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
			defer cancel()
			_ = b.pubsub.Unsubscribe(ctx, topic)
		}
	}
}

// Publish notifies topic subscribers in this process and, when redis is
// attached, in sibling processes. It returns after local delivery completes.
func (b *Bus) Publish(topic string) {
	if b == nil {
		return
	}
	b.deliver(topic)
	if b.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := b.rdb.Publish(ctx, topic, b.origin).Err(); err != nil && b.lg != nil {
			b.lg.Warnw("bus cross-process publish failed", "topic", topic, "error", err)
		}
	}
}

// deliver invokes every local subscriber for topic, isolating panics so one
// failing callback cannot starve the rest or the mutating caller.
func (b *Bus) deliver(topic string) {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.subs[topic]))
	for _, fn := range b.subs[topic] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()
	for _, fn := range fns {
		b.call(fn)
	}
}

func (b *Bus) call(fn func()) {
	defer func() {
		if r := recover(); r != nil && b.lg != nil {
			b.lg.Warnw("bus subscriber panicked", "panic", r)
		}
	}()
	fn()
}

// relay moves cross-process messages into local delivery, skipping this
// process's own publishes.
func (b *Bus) relay() {
	for msg := range b.pubsub.Channel() {
		if msg.Payload == b.origin {
			continue
		}
		b.deliver(msg.Channel)
	}
}

// Close stops the cross-process relay. The local bus keeps working.
func (b *Bus) Close() error {
	if b == nil || b.pubsub == nil {
		return nil
	}
	return b.pubsub.Close()
}
