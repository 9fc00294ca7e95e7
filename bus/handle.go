package bus

import "strconv"

// Handle identifies one subscription on one category. C only exists at
// compile time: it ties the handle to the category it was issued for.
type Handle[C Message] struct {
	id       uint64
	category string
}

func (h Handle[C]) ID() uint64 {
	return h.id
}

func (h Handle[C]) Category() string {
	return h.category
}

// IsZero reports whether h was never issued. Subscribe returns a zero handle
// when it refuses a subscription.
func (h Handle[C]) IsZero() bool {
	return h.id == 0
}

func (h Handle[C]) String() string {
	return h.category + "#" + strconv.FormatUint(h.id, 10)
}

// Ref is the untyped view of a Handle that Unsubscribe accepts.
type Ref interface {
	ID() uint64
	Category() string
}
