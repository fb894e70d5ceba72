package pubsub

import (
	"context"
	"time"
)

// SubscribeHandler is called once per consumed pack with the broker
// timestamp of the message.
type SubscribeHandler func(ctx context.Context, pack *Pack, t time.Time)

type Subscriber interface {
	// Subscribe blocks until ctx is done or the subscriber is closed.
	Subscribe(ctx context.Context)
	Close() error
}
