package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogMailer writes messages to the structured log instead of delivering them.
// It is the default outside production so the confirm/deny links stay reachable.
type LogMailer struct {
	logger     *zap.Logger
	subjPrefix string
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer builds a log-backed mailer.
func NewLogMailer(logger *zap.Logger, appName string) *LogMailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogMailer{logger: logger, subjPrefix: "[" + appName + "] "}
}

// Send renders the message and logs it.
func (m *LogMailer) Send(ctx context.Context, msg *Message) error {
	if err := msg.Render(); err != nil {
		return err
	}
	m.logger.Info("mail",
		zap.String("to", joinAddresses(msg.To)),
		zap.String("subject", m.subjPrefix+msg.Subject),
		zap.String("body", msg.TextContent),
	)
	return nil
}
