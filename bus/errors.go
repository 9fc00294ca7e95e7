package bus

import "errors"

var (
	ErrUnknownCategory     = errors.New("unknown message category")
	ErrUnknownSubscription = errors.New("unknown subscription")
	ErrPayloadMismatch     = errors.New("payload type mismatch")
	ErrDuplicateCategory   = errors.New("duplicate message category")
	ErrNotAggregated       = errors.New("category is not part of the master aggregate")
	ErrInvalidAggregate    = errors.New("invalid master aggregate")
	ErrClosed              = errors.New("bus is closed")
	ErrCallbackRequired    = errors.New("callback is required")
	ErrCallbackPanic       = errors.New("callback panicked")
)
