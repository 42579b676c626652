package email

import (
	"context"

	"gatekeeper/internal/logger"
)

// LogSender is the development stand-in for real delivery: it logs the
// message instead of sending it and reports the recipient address as the
// "preview", so the verification/reset links remain reachable from logs.
type LogSender struct{}

var _ Sender = (*LogSender)(nil)

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, msg Message) Result {
	logger.Info("email (not sent, development mode)", map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	return Result{Success: true, PreviewURL: "log://" + msg.To}
}
