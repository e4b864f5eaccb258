package service

import (
	"go.uber.org/zap"

	"github.com/saludplus/backend/pkg/logger"
)

// Notification is a toast-style event for the UI layer.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notifier receives user-facing events. The rendering side (toasts,
// websockets, whatever the frontend consumes) lives outside this module.
type Notifier interface {
	Notify(sessionID string, n Notification)
}

// logNotifier is the default sink: events only reach the log.
type logNotifier struct{}

func NewLogNotifier() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(sessionID string, n Notification) {
	logger.Info("notification",
		zap.String("session_id", sessionID),
		zap.String("severity", n.Severity),
		zap.String("title", n.Title))
}
