package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "connect4:game:"

// Channel is the pub/sub channel events for gameID are published on.
func Channel(gameID string) string {
	return channelPrefix + gameID
}

// NewClient connects and pings. A failed ping closes the client.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Println("[REDIS] Connected successfully")
	return client, nil
}

// Publisher publishes game events as JSON.
type Publisher struct {
	client  *redis.Client
	timeout time.Duration
}

func NewPublisher(client *redis.Client) *Publisher {
	return &Publisher{client: client, timeout: 2 * time.Second}
}

func (p *Publisher) Publish(ctx context.Context, event domain.GameEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.client.Publish(ctx, Channel(event.GameID), payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", Channel(event.GameID), err)
	}
	return nil
}

// Subscribe decodes events for one game until ctx is done. The returned
// channel is closed when the subscription ends.
func Subscribe(ctx context.Context, client *redis.Client, gameID string) (<-chan domain.GameEvent, error) {
	sub := client.Subscribe(ctx, Channel(gameID))
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", Channel(gameID), err)
	}

	out := make(chan domain.GameEvent)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev domain.GameEvent
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("[REDIS] Dropping malformed event on %s: %v", msg.Channel, err)
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
