// Package state carries the ambient progress/logging primitive shared by
// fdp's archive differ. It is adapted from wharf's pwr.StateConsumer: a
// nil-safe callback struct rather than a structured-logging dependency,
// since that is the teacher's own idiom at this layer.
package state

import "fmt"

// ProgressCallback reports the fraction, in percent, of an operation that
// has completed so far.
type ProgressCallback func(percent float64)

// MessageCallback receives a leveled log line. level is one of "debug",
// "info", "warning".
type MessageCallback func(level, msg string)

// Consumer is an optional sink for progress and log messages. The zero
// value discards everything, so callers that don't care about progress
// reporting can pass a bare &state.Consumer{} or nil.
type Consumer struct {
	OnProgress ProgressCallback
	OnMessage  MessageCallback
}

// Progress reports percent completion, if a callback was registered.
func (c *Consumer) Progress(percent float64) {
	if c == nil || c.OnProgress == nil {
		return
	}
	c.OnProgress(percent)
}

func (c *Consumer) message(level, msg string) {
	if c == nil || c.OnMessage == nil {
		return
	}
	c.OnMessage(level, msg)
}

// Debug logs a debug-level message.
func (c *Consumer) Debug(msg string) { c.message("debug", msg) }

// Debugf logs a formatted debug-level message.
func (c *Consumer) Debugf(format string, args ...interface{}) {
	c.message("debug", fmt.Sprintf(format, args...))
}

// Info logs an info-level message.
func (c *Consumer) Info(msg string) { c.message("info", msg) }

// Infof logs a formatted info-level message.
func (c *Consumer) Infof(format string, args ...interface{}) {
	c.message("info", fmt.Sprintf(format, args...))
}

// Warn logs a warning-level message.
func (c *Consumer) Warn(msg string) { c.message("warning", msg) }

// Warnf logs a formatted warning-level message.
func (c *Consumer) Warnf(format string, args ...interface{}) {
	c.message("warning", fmt.Sprintf(format, args...))
}
