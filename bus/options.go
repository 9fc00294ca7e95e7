package bus

import (
	"log/slog"

	"github.com/fogfish/opts"
)

const defaultName = "tagbus"

// WithName sets the logger name the bus reports its diagnostics under.
var WithName = opts.ForName[Bus, string]("name")

// WithLogger sets the logger for bus diagnostics. The default is slog.Default().
func WithLogger(logger *slog.Logger) opts.Option[Bus] {
	return opts.Type[Bus](func(b *Bus) error {
		b.logger = logger
		return nil
	})
}
