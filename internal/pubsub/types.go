package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
	topic  string
}

// EventType names the kind of payload carried by a message.
type EventType string

const (
	EventTournamentFinished EventType = "tournament-finished"
)

// eventAttribute is the message attribute carrying the EventType.
const eventAttribute = "event"

// PushMessage is the JSON envelope Pub/Sub posts to push subscriptions.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
		MessageID  string            `json:"messageId"`
	} `json:"message"`
}
