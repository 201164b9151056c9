// Package mail turns profile events into user notifications.
package mail

import (
	"context"
	"encoding/json"

	"github.com/tazhibayda/threads-service/internal/log"
	"github.com/tazhibayda/threads-service/internal/metrics"
	"github.com/tazhibayda/threads-service/internal/queue"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to, subject, body string) error {
	log.FromContext(ctx).Info("mail",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

type Notifier struct {
	Sender Sender
}

// HandleProfileSaved sends a welcome note for a newly onboarded user. Updates
// to an existing profile are acknowledged without mail. A body that is not a
// ProfileSaved is dropped; retrying it would never succeed.
func (n *Notifier) HandleProfileSaved(ctx context.Context, body []byte) error {
	var ev queue.ProfileSaved
	if err := json.Unmarshal(body, &ev); err != nil || ev.ExternalID == "" {
		log.FromContext(ctx).Warn("dropping malformed profile event", zap.ByteString("body", body))
		metrics.EventsConsumed.WithLabelValues(queue.KeyProfileSaved, "dropped").Inc()
		return nil
	}
	if !ev.Created {
		metrics.EventsConsumed.WithLabelValues(queue.KeyProfileSaved, "skipped").Inc()
		return nil
	}

	name := ev.Name
	if name == "" {
		name = "@" + ev.Username
	}
	if err := n.Sender.Send(ctx, ev.ExternalID, "Welcome to Threads", "Hi "+name+", your profile is ready."); err != nil {
		metrics.EventsConsumed.WithLabelValues(queue.KeyProfileSaved, "failed").Inc()
		return err
	}
	metrics.EventsConsumed.WithLabelValues(queue.KeyProfileSaved, "sent").Inc()
	return nil
}
