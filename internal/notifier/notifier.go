package notifier

import "context"

// Notifier delivers formatted alert text to the output channel.
type Notifier interface {
	Send(text string) error
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Noop discards all messages; used for dry runs and tests.
type Noop struct{}

func (Noop) Send(string) error                                { return nil }
func (Noop) SendWithRetry(context.Context, string, int) error { return nil }
