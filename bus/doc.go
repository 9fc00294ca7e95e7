// Package bus implements a typed, category-keyed publish/subscribe message
// bus. Messages are grouped into named categories, each bound to one tagged
// union payload type from package tag, and a message is delivered only to
// the subscriptions of its own category.
//
// Design decisions:
//   - Two step dispatch: the category name selects the candidate
//     subscriptions, then each subscription checks that the active member of
//     the Master value is exactly its payload type before running
//   - Closed world: the Master aggregate lists every category; adding one
//     means regenerating the declarations with cmd/tagbus-gen
//   - Typed handles: Handle[C] remembers its category at compile time and
//     carries the category name and subscription id at runtime
//   - Synchronous delivery: Send runs every callback on the caller's
//     goroutine before it returns
//   - Contain and log: Send and Unsubscribe never return errors; unknown
//     categories, stale handles, type mismatches and panicking callbacks are
//     logged and skipped
//   - Thread safety: each category has its own lock, and Send dispatches
//     from a snapshot, so callbacks may subscribe and unsubscribe freely
//
// Component hierarchy:
//   - Bus: category name → ordered subscriptions
//     ├── Master: the aggregate union over every category payload
//     ├── Subscription: a Callback[U] bound to payload type U
//     └── Handle[C]: the caller's token for Unsubscribe
//
// Example usage:
//
//	b := bus.New(demo.MasterAggregate)
//
//	h := bus.Subscribe[demo.MyMessage](b, func(ctx context.Context, p demo.MyMessageEnum) {
//	    if p.Equal(demo.AY) {
//	        // ...
//	    }
//	})
//	defer b.Unsubscribe(h)
//
//	b.Send(ctx, demo.NewMyMessage(demo.AY))   // delivered
//	b.Send(ctx, demo.NewOtherMessage(demo.AZ)) // other category, not delivered
//
// Re-entrancy: a callback that unsubscribes a later subscription of the same
// send stops that delivery; a subscription added during a send only sees
// later sends.
package bus
