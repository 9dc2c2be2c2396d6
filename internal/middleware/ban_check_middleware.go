package middleware

import (
	"context"
	"log"

	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/relay"
)

// BanCheck stops banned users before they reach the relay engine.
func BanCheck(
	transport relay.Transport,
	next func(context.Context, *models.User, relay.Event),
) func(context.Context, *models.User, relay.Event) {
	return func(ctx context.Context, user *models.User, ev relay.Event) {
		if user.IsBanned {
			text := localization.GetLocalizedText(user.Lang, localization.UserBanned)

			if err := transport.SendText(ctx, user.Id, text); err != nil {
				log.Println(err)
			}

			return
		}

		next(ctx, user, ev)
	}
}
