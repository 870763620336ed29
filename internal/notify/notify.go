// Package notify is the outbound notification boundary. Mutation
// controllers emit success/error events here; how they are presented
// (toast, feed, log) is owned by whatever sits behind the Notifier.
package notify

import "opsdeck/internal/logger"

// Notifier receives user-facing notification events.
type Notifier interface {
	Success(userID uint, message string)
	Error(userID uint, message string)
}

// LogNotifier emits notifications to the structured log. It is the
// default sink when no richer channel is configured.
type LogNotifier struct{}

// NewLogNotifier creates a log-backed Notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Success logs a success notification.
func (n *LogNotifier) Success(userID uint, message string) {
	logger.Get().Infow("notify", "level", "success", "user_id", userID, "message", message)
}

// Error logs an error notification.
func (n *LogNotifier) Error(userID uint, message string) {
	logger.Get().Warnw("notify", "level", "error", "user_id", userID, "message", message)
}

// Nop discards all notifications. Used in tests.
type Nop struct{}

func (Nop) Success(uint, string) {}
func (Nop) Error(uint, string)   {}
