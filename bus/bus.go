package bus

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync/atomic"

	"github.com/casualjim/tagbus/internal/registry"
	"github.com/casualjim/tagbus/pkg/slogx"
	"github.com/casualjim/tagbus/pkg/uuidx"
	"github.com/casualjim/tagbus/tag"
	"github.com/fogfish/opts"
)

// Bus maps category names to ordered subscription lists and delivers each
// sent message to the subscriptions of its category.
type Bus struct {
	id     string
	name   string
	logger *slog.Logger
	master *Master

	topics registry.Registry[*topic]
	lastID atomic.Uint64
	closed atomic.Bool
}

// New creates an empty bus over master.
func New(master *Master, options ...opts.Option[Bus]) *Bus {
	if master == nil {
		panic(fmt.Errorf("%w: a bus needs a master aggregate", ErrInvalidAggregate))
	}
	b := &Bus{
		id:     uuidx.NewString(),
		name:   defaultName,
		master: master,
		topics: registry.New[*topic](),
	}
	if err := opts.Apply(b, options); err != nil {
		panic(err)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.logger = b.logger.With(slogx.LoggerName(b.name), slog.String("bus", b.id))
	return b
}

func (b *Bus) ID() string {
	return b.id
}

func (b *Bus) Name() string {
	return b.name
}

func (b *Bus) Master() *Master {
	return b.master
}

// Subscribe registers fn for messages of category C. Subscription ids come
// from a counter shared by the whole bus and are never reused. A nil
// callback or a closed bus is logged and yields a zero handle.
func Subscribe[C Category[U], U tag.Value](b *Bus, fn Callback[U]) Handle[C] {
	name := NameOf[C]()
	if fn == nil {
		b.logger.Warn("refusing subscription", slog.String("category", name), slogx.Error(ErrCallbackRequired))
		return Handle[C]{}
	}
	if b.closed.Load() {
		b.logger.Warn("refusing subscription", slog.String("category", name), slogx.Error(ErrClosed))
		return Handle[C]{}
	}
	if !b.master.Has(name) {
		b.logger.Warn("subscribing to a category outside the master aggregate",
			slog.String("category", name), slogx.Error(ErrNotAggregated))
	}

	id := b.lastID.Add(1)
	t, _ := b.topics.GetOrAdd(name, func() *topic { return newTopic(name, &b.closed) })
	if !t.add(newSubscription(id, fn)) {
		b.logger.Warn("refusing subscription", slog.String("category", name), slogx.Error(ErrClosed))
		return Handle[C]{}
	}

	b.logger.Debug("subscribed",
		slog.String("category", name),
		slog.Uint64("subscription", id),
		slogx.Stringer("payload", tag.For[U]()),
	)
	return Handle[C]{id: id, category: name}
}

// Unsubscribe removes the subscription ref points at. Unknown categories and
// ids, including handles that were already used, are logged and leave the
// bus untouched. It reports whether a subscription was removed.
func (b *Bus) Unsubscribe(ref Ref) bool {
	if ref == nil {
		b.logger.Warn("ignoring unsubscribe", slogx.Error(ErrUnknownSubscription))
		return false
	}

	t, ok := b.topics.Get(ref.Category())
	if !ok {
		b.logger.Warn("ignoring unsubscribe",
			slog.String("category", ref.Category()),
			slog.Uint64("subscription", ref.ID()),
			slogx.Error(ErrUnknownCategory),
		)
		return false
	}
	if !t.remove(ref.ID()) {
		b.logger.Warn("ignoring unsubscribe",
			slog.String("category", ref.Category()),
			slog.Uint64("subscription", ref.ID()),
			slogx.Error(ErrUnknownSubscription),
		)
		return false
	}

	b.logger.Debug("unsubscribed", slog.String("category", ref.Category()), slog.Uint64("subscription", ref.ID()))
	return true
}

// Send delivers msg to every subscription of its category, in registration
// order, before returning. Failures are logged per subscription and never
// stop the remaining deliveries. It returns the number of callbacks that
// ran to completion.
func (b *Bus) Send(ctx context.Context, msg Message) int {
	if msg == nil {
		b.logger.WarnContext(ctx, "dropping nil message")
		return 0
	}

	name := msg.CategoryName()
	if b.closed.Load() {
		b.logger.WarnContext(ctx, "dropping message", slog.String("category", name), slogx.Error(ErrClosed))
		return 0
	}

	t, ok := b.topics.Get(name)
	if !ok {
		b.logger.DebugContext(ctx, "dropping message", slog.String("category", name), slogx.Error(ErrUnknownCategory))
		return 0
	}

	subs := t.snapshot()
	if len(subs) == 0 {
		return 0
	}

	master, err := b.master.Wrap(msg)
	if err != nil {
		b.logger.ErrorContext(ctx, "dropping message", slog.String("category", name), slogx.Error(err))
		return 0
	}

	var delivered int
	for sub := range slices.Values(subs) {
		// unsubscribed by an earlier callback of this send
		if sub.removed() {
			continue
		}

		thunk, ok := sub.deliver(ctx, master)
		if !ok {
			b.logger.ErrorContext(ctx, "skipping subscription",
				slog.String("category", name),
				slog.Uint64("subscription", sub.ID()),
				slogx.Error(fmt.Errorf("%w: subscribed to %s, got %s",
					ErrPayloadMismatch, sub.PayloadType(), tag.Of(master.Unwrap()))),
			)
			continue
		}
		if b.invoke(ctx, name, sub.ID(), thunk) {
			delivered++
		}
	}
	return delivered
}

func (b *Bus) invoke(ctx context.Context, name string, id uint64, thunk func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			b.logger.ErrorContext(ctx, "subscription callback failed",
				slog.String("category", name),
				slog.Uint64("subscription", id),
				slogx.Error(fmt.Errorf("%w: %v", ErrCallbackPanic, r)),
			)
		}
	}()
	thunk()
	return true
}

// Len returns the number of subscriptions registered for a category.
func (b *Bus) Len(category string) int {
	t, ok := b.topics.Get(category)
	if !ok {
		return 0
	}
	return t.len()
}

// Categories returns the names of the categories that currently have at
// least one subscription, in lexical order.
func (b *Bus) Categories() []string {
	return slices.DeleteFunc(b.topics.Names(), func(name string) bool {
		return b.Len(name) == 0
	})
}

// Close drops every subscription. Later calls to Subscribe, Send and
// Unsubscribe are logged no-ops.
func (b *Bus) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	var dropped int
	for name := range slices.Values(b.topics.Names()) {
		if t, ok := b.topics.Get(name); ok {
			dropped += t.clear()
		}
		b.topics.Del(name)
	}
	b.logger.Debug("closed", slog.Int("dropped", dropped))
}
