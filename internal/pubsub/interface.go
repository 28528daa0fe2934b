package pubsub

import "context"

type PubSubClient interface {
	SendMessage(ctx context.Context, event EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
}
