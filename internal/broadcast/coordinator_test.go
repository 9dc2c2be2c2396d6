package broadcast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"supportbot/internal/models"
)

type fakeSender struct {
	order    []int64
	texts    map[int64]string
	captions map[int64]string
	media    map[int64]models.Media
	failures map[int64]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		texts:    make(map[int64]string),
		captions: make(map[int64]string),
		media:    make(map[int64]models.Media),
		failures: make(map[int64]error),
	}
}

func (s *fakeSender) SendText(_ context.Context, to int64, text string) error {
	s.order = append(s.order, to)

	if err := s.failures[to]; err != nil {
		return err
	}

	s.texts[to] = text

	return nil
}

func (s *fakeSender) SendMedia(_ context.Context, to int64, media models.Media, caption string) error {
	s.order = append(s.order, to)

	if err := s.failures[to]; err != nil {
		return err
	}

	s.media[to] = media
	s.captions[to] = caption

	return nil
}

func TestBroadcastAttemptsEveryRecipientInOrder(t *testing.T) {
	req := require.New(t)
	sender := newFakeSender()
	sender.failures[2] = errors.New("blocked")
	sender.failures[4] = errors.New("blocked")

	recipients := []int64{1, 2, 3, 4, 5}
	result := NewCoordinator(sender).Broadcast(context.Background(), Payload{Text: "hi"}, recipients)

	req.Equal(Result{Succeeded: 3, Failed: 2}, result)
	req.Equal(recipients, sender.order, "a failure must not stop or reorder the roster")
	req.Equal("hi", sender.texts[5])
}

func TestBroadcastMediaPayload(t *testing.T) {
	req := require.New(t)
	sender := newFakeSender()

	media := models.Media{Kind: models.MediaPhoto, FileID: "photo-1"}
	result := NewCoordinator(sender).Broadcast(context.Background(), Payload{
		Media:   &media,
		Caption: "look",
	}, []int64{7})

	req.Equal(Result{Succeeded: 1}, result)
	req.Equal(media, sender.media[7])
	req.Equal("look", sender.captions[7])
	req.Empty(sender.texts, "media payload must not fall back to text")
}

func TestBroadcastEmptyRoster(t *testing.T) {
	req := require.New(t)
	sender := newFakeSender()

	result := NewCoordinator(sender).Broadcast(context.Background(), Payload{Text: "hi"}, nil)

	req.Equal(Result{}, result)
	req.Empty(sender.order)
}
