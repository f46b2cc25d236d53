package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "staff:events:" // Pub/Sub channel per resource: staff:events:{resource}

// RedisPublisher publishes events on Redis Pub/Sub
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Channel returns the Pub/Sub channel events for resource are published on.
func Channel(resource string) string {
	return fmt.Sprintf("%s%s", channelPrefix, resource)
}

// Publish serialises e and publishes it on the resource channel.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(e.Resource), data).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}
