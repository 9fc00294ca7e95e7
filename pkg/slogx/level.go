package slogx

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel reads a level name such as "debug", "WARN" or "info+2". An
// empty string selects info.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
