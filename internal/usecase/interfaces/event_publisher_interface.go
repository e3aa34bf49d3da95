package interfaces

import "context"

// IEventPublisher is the outbound notification channel. Delivery is
// best-effort, at-most-once; dashboards poll the read endpoints as the
// authoritative fallback.

type IEventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}
