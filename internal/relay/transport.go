package relay

import (
	"context"

	"supportbot/internal/models"
)

// Button is one inline keyboard button carrying a callback token.
type Button struct {
	Label string
	Token string
}

// Transport is the outbound side of the messaging gateway. Implementations
// must be safe for concurrent use; the engine treats every failed send as
// non-fatal.
type Transport interface {
	SendText(ctx context.Context, to int64, text string) error
	SendMedia(ctx context.Context, to int64, media models.Media, caption string) error
	SendTextButtons(ctx context.Context, to int64, text string, buttons []Button) error
	SendMediaButtons(ctx context.Context, to int64, media models.Media, caption string, buttons []Button) error
	SendMenu(ctx context.Context, to int64, text string, rows [][]string) error
	AnswerCallback(ctx context.Context, callbackId string, text string) error
}
