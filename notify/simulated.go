package notify

import (
	"context"
	"log/slog"
	"sync"
)

// SimulatedNotifier accepts every valid message without delivering anything.
// Sent messages are retained so tests and the workflow summary can inspect them.
type SimulatedNotifier struct {
	mu   sync.Mutex
	sent []Message
}

// NewSimulatedNotifier creates an empty SimulatedNotifier.
func NewSimulatedNotifier() *SimulatedNotifier {
	return &SimulatedNotifier{}
}

// Send validates and records the message.
func (n *SimulatedNotifier) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	n.mu.Lock()
	n.sent = append(n.sent, msg)
	n.mu.Unlock()
	slog.Info("simulated email", "to", msg.To, "subject", msg.Subject)
	return nil
}

// Sent returns a copy of the recorded messages.
func (n *SimulatedNotifier) Sent() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Message, len(n.sent))
	copy(out, n.sent)
	return out
}

// FallbackNotifier tries the primary notifier and degrades to the fallback
// when the primary fails. Which implementations sit on either side is a
// composition-time decision; business logic only sees a Notifier.
type FallbackNotifier struct {
	Primary  Notifier
	Fallback Notifier
}

// Send tries Primary and falls back on any error except message validation
// failures, which no provider could fix.
func (n *FallbackNotifier) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	err := n.Primary.Send(ctx, msg)
	if err == nil {
		return nil
	}
	slog.Warn("primary notifier failed, using fallback", "to", msg.To, "error", err)
	return n.Fallback.Send(ctx, msg)
}

// MockNotifier is a test double for Notifier.
type MockNotifier struct {
	SendFn func(ctx context.Context, msg Message) error
}

func (m *MockNotifier) Send(ctx context.Context, msg Message) error {
	return m.SendFn(ctx, msg)
}
