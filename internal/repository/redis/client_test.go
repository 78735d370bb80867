package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
)

func TestChannel(t *testing.T) {
	if got := Channel("abc"); got != "connect4:game:abc" {
		t.Fatalf("channel = %q", got)
	}
}

// Requires a running server: TEST_REDIS_URL=localhost:6379
func TestPublishSubscribeRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := NewClient(ctx, addr, os.Getenv("TEST_REDIS_PASSWORD"))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	events, err := Subscribe(ctx, client, "round-trip")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	want := domain.GameEvent{
		Type:          domain.EventMoveMade,
		GameID:        "round-trip",
		Move:          &domain.MoveResult{Row: 5, Column: 3, Player: domain.Player1, Status: domain.MoveContinuing, NextPlayer: domain.Player2},
		State:         domain.StateInProgress,
		CurrentPlayer: domain.Player2,
	}
	if err := NewPublisher(client).Publish(ctx, want); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case got := <-events:
		if got.Type != want.Type || got.Move == nil || got.Move.Column != 3 {
			t.Fatalf("unexpected event %+v", got)
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for event")
	}
}
