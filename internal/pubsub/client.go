package pubsub

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Pub/Sub and publishes every event to topicID.
func New(ctx context.Context, projectID, topicID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topic:  pubSubC.Topic(topicID),
	}, nil
}

func (c *client) SendMessage(ctx context.Context, event EventType, data any) error {
	msgpackData, err := encode(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err, "event", event)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{eventAttribute: string(event)},
	}
	result := c.topic.Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", c.topic.ID(), "event", event)
		return fmt.Errorf("failed to publish %s: %w", event, err)
	}
	log.Info("SendMessage", "serverID", serverID, "event", event)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

// Close flushes pending messages and releases the connection.
func (c *client) Close() error {
	c.topic.Stop()
	return c.client.Close()
}

func encode(data any) ([]byte, error) {
	return msgpack.Marshal(data)
}

func decode(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}
