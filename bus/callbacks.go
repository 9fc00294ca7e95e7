package bus

import (
	"context"
	"log/slog"
	"slices"

	"github.com/casualjim/tagbus/pkg/slogx"
	"github.com/casualjim/tagbus/tag"
	json "github.com/goccy/go-json"
)

// LogCallback returns a callback that logs every payload it receives.
func LogCallback[U tag.Value](logger *slog.Logger) Callback[U] {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, payload U) {
		b, err := json.Marshal(payload)
		if err != nil {
			logger.ErrorContext(ctx, "failed to render payload", slog.String("payload", tag.Describe(payload)), slogx.Error(err))
			return
		}
		logger.InfoContext(ctx, "message", slog.String("payload", tag.Describe(payload)), slogx.ByteString("json", b))
	}
}

// Compose returns a callback that runs each callback in order.
func Compose[U tag.Value](callbacks ...Callback[U]) Callback[U] {
	callbacks = slices.DeleteFunc(slices.Clone(callbacks), func(cb Callback[U]) bool { return cb == nil })
	return func(ctx context.Context, payload U) {
		for cb := range slices.Values(callbacks) {
			cb(ctx, payload)
		}
	}
}
