package bus

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/casualjim/tagbus/pkg/reflectx"
	"github.com/casualjim/tagbus/tag"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Callback receives the payload of a delivered message. It runs on the
// goroutine that called Send.
type Callback[U tag.Value] func(ctx context.Context, payload U)

// subscriber is the type erased view of a subscription stored by the bus.
type subscriber interface {
	ID() uint64
	PayloadType() tag.TypeID
	// deliver returns a thunk invoking the callback when the active member
	// of master is exactly the subscribed payload type.
	deliver(ctx context.Context, master tag.Variant) (func(), bool)
	removed() bool
	markRemoved()
}

type subscription[U tag.Value] struct {
	id   uint64
	fn   Callback[U]
	gone atomic.Bool
}

func newSubscription[U tag.Value](id uint64, fn Callback[U]) *subscription[U] {
	return &subscription[U]{id: id, fn: fn}
}

func (s *subscription[U]) ID() uint64 {
	return s.id
}

func (s *subscription[U]) PayloadType() tag.TypeID {
	return tag.For[U]()
}

func (s *subscription[U]) deliver(ctx context.Context, master tag.Variant) (func(), bool) {
	active := master.Unwrap()
	if !reflectx.IsRefinedValue[U](active) {
		return nil, false
	}
	payload, ok := active.(U)
	if !ok {
		return nil, false
	}
	return func() { s.fn(ctx, payload) }, true
}

func (s *subscription[U]) removed() bool {
	return s.gone.Load()
}

func (s *subscription[U]) markRemoved() {
	s.gone.Store(true)
}

// topic is the bucket of subscriptions for one category, kept in
// registration order.
type topic struct {
	name   string
	closed *atomic.Bool

	mu   sync.Mutex
	subs *orderedmap.OrderedMap[uint64, subscriber]
}

func newTopic(name string, closed *atomic.Bool) *topic {
	return &topic{
		name:   name,
		closed: closed,
		subs:   orderedmap.New[uint64, subscriber](),
	}
}

func (t *topic) add(sub subscriber) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed.Load() {
		return false
	}
	t.subs.Set(sub.ID(), sub)
	return true
}

func (t *topic) remove(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	sub, ok := t.subs.Delete(id)
	if ok {
		sub.markRemoved()
	}
	return ok
}

func (t *topic) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.subs.Len()
}

// snapshot copies the subscriptions so dispatch runs without the lock held
// and callbacks can subscribe or unsubscribe.
func (t *topic) snapshot() []subscriber {
	t.mu.Lock()
	defer t.mu.Unlock()
	subs := make([]subscriber, 0, t.subs.Len())
	for pair := t.subs.Oldest(); pair != nil; pair = pair.Next() {
		subs = append(subs, pair.Value)
	}
	return subs
}

func (t *topic) clear() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.subs.Len()
	for pair := t.subs.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.markRemoved()
	}
	t.subs = orderedmap.New[uint64, subscriber]()
	return n
}
