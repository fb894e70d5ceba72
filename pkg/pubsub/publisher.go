package pubsub

import "context"

// Pack is a keyed message. Packs sharing a key keep their order.
type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(ctx context.Context, topic string, pack *Pack) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher which drops every pack. It is used when
// no broker is configured.
func NewNopPublisher() *nopPublisher {
	return &nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, *Pack) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
