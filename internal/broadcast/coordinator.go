// Package broadcast executes best-effort one-to-many sends.
package broadcast

import (
	"context"
	"log"

	"supportbot/internal/models"
)

// Sender is the outbound half of the transport the coordinator needs.
type Sender interface {
	SendText(ctx context.Context, to int64, text string) error
	SendMedia(ctx context.Context, to int64, media models.Media, caption string) error
}

// Payload is the broadcast content: plain text, or one media item with an
// optional caption when Media is set.
type Payload struct {
	Text    string
	Media   *models.Media
	Caption string
}

type Result struct {
	Succeeded int
	Failed    int
}

type Coordinator struct {
	sender Sender
}

func NewCoordinator(sender Sender) *Coordinator {
	return &Coordinator{sender: sender}
}

// Broadcast sends payload to every recipient exactly once, in roster order.
// A failed send is logged and counted; it never aborts the remaining sends.
// There is no retry and no rollback.
func (c *Coordinator) Broadcast(ctx context.Context, payload Payload, recipients []int64) Result {
	var result Result

	for _, recipient := range recipients {
		if err := c.send(ctx, payload, recipient); err != nil {
			log.Printf("broadcast: send to %d failed: %v", recipient, err)
			result.Failed++

			continue
		}

		result.Succeeded++
	}

	return result
}

func (c *Coordinator) send(ctx context.Context, payload Payload, recipient int64) error {
	if payload.Media != nil {
		return c.sender.SendMedia(ctx, recipient, *payload.Media, payload.Caption)
	}

	return c.sender.SendText(ctx, recipient, payload.Text)
}
