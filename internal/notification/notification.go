package notification

import (
	"context"
	"log/slog"
)

const (
	// KindApproved indicates a sanction letter was issued.
	KindApproved = "loan_approved"
	// KindHumanReview indicates the application was deferred to an officer.
	KindHumanReview = "loan_human_review"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	ApplicantID string
	Body        string
}

// Notifier delivers notifications to downstream systems.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "applicant_id", message.ApplicantID, "body", message.Body)
	return nil
}
