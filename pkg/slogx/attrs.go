// Package slogx provides slog attributes shared by the bus and its tools.
package slogx

import (
	"fmt"
	"log/slog"
)

// KeyLoggerName is the attribute key that names the component a record
// came from.
const KeyLoggerName = "logger"

// Error renders err under the "error" key. A nil error renders as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// ByteString logs value as text, for JSON fragments and similar payloads.
func ByteString(key string, value []byte) slog.Attr {
	return slog.String(key, string(value))
}

func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}
