package notify

import "context"

// Notifier delivers desktop notifications. Delivery is fire-and-forget;
// implementations never propagate failures to the caller.
type Notifier interface {
	Notify(executionContext context.Context, payload Payload)
}

// NopNotifier drops every payload. It stands in when notifications are
// disabled.
type NopNotifier struct{}

// Notify discards the payload.
func (NopNotifier) Notify(context.Context, Payload) {}
