package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a client publishing to topic in projectID. The returned teardown
// closes the underlying connection.
func New(ctx context.Context, projectID, topic string) (PubSubClient, func(), error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		if err := pubSubC.Close(); err != nil {
			log.Error("Failed to close pubsub client", "error", err)
		}
	}

	return &client{
		client: pubSubC,
		topic:  topic,
	}, teardown, nil
}

func (c *client) SendMessage(ctx context.Context, event EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{eventAttribute: string(event)},
	}
	result := c.client.Topic(c.topic).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic, "event", event)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "event", event)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return Decode(data, returnValue)
}

// Decode unmarshals a msgpack payload into returnValue.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// ParsePush unwraps a push delivery body and returns the raw payload and its event.
func ParsePush(body []byte) ([]byte, EventType, error) {
	var msg PushMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, "", fmt.Errorf("invalid push envelope: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		return nil, "", fmt.Errorf("invalid base64 data: %w", err)
	}
	return raw, EventType(msg.Message.Attributes[eventAttribute]), nil
}

// EncodePush builds a push delivery body. It mirrors what Pub/Sub posts and is
// used by tests and the CLI.
func EncodePush(event EventType, data any) ([]byte, error) {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return nil, err
	}
	var msg PushMessage
	msg.Subscription = "local"
	msg.Message.Data = base64.StdEncoding.EncodeToString(raw)
	msg.Message.Attributes = map[string]string{eventAttribute: string(event)}
	return json.Marshal(msg)
}
