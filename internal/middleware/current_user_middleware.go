package middleware

import (
	"context"
	"log"

	"supportbot/internal/models"
	"supportbot/internal/relay"
	"supportbot/internal/storage"
)

// CurrentUser resolves (or lazily creates) the directory record for the
// event's sender before anything else runs. A missing record never blocks
// message processing.
func CurrentUser(
	store storage.Storage,
	next func(context.Context, *models.User, relay.Event),
) func(context.Context, relay.Event) {
	return func(ctx context.Context, ev relay.Event) {
		user, err := store.GetOrCreateUser(ctx, ev.From.ID, ev.From.Username)

		if err != nil {
			log.Println(err)

			return
		}

		user.Lang = ev.From.Lang
		next(ctx, &user, ev)
	}
}
