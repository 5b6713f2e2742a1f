package slack

import (
	"context"

	"github.com/rs/zerolog"
)

// MockSlack implements the Notifier interface by logging messages.
// Replace this with a real Slack client for production use.
type MockSlack struct {
	log zerolog.Logger
}

func NewMockSlack(log zerolog.Logger) *MockSlack {
	return &MockSlack{log: log}
}

func (m *MockSlack) Publish(_ context.Context, message string) error {
	m.log.Info().Str("channel", "slack").Msg(message)
	return nil
}
