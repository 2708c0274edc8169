package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPredictionSettled EventType = "prediction-settled"
	EventPredictionFailed  EventType = "prediction-failed"
)

// eventAttribute carries the EventType on every published message.
const eventAttribute = "event"
