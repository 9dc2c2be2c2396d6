package relay

import (
	"context"
	"errors"
	"log"

	"supportbot/internal/broadcast"
	"supportbot/internal/chats"
	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/session"
	"supportbot/internal/storage"
)

// Engine is the relay state machine. Every inbound event enters through
// Handle; no failure on the relay path terminates the process — everything
// degrades to a user-visible notice and a logged diagnostic.
type Engine struct {
	storage   storage.Storage
	sessions  *session.Store
	chats     *chats.Manager
	broadcast *broadcast.Coordinator
	transport Transport
}

func NewEngine(
	storage storage.Storage,
	sessions *session.Store,
	chats *chats.Manager,
	broadcast *broadcast.Coordinator,
	transport Transport,
) *Engine {
	return &Engine{
		storage:   storage,
		sessions:  sessions,
		chats:     chats,
		broadcast: broadcast,
		transport: transport,
	}
}

func (e *Engine) Handle(ctx context.Context, user *models.User, ev Event) {
	switch ev.Kind {
	case EventStart:
		e.handleStart(ctx, user)
	case EventCancel:
		e.handleCancel(ctx, user)
	case EventButton:
		e.handleButton(ctx, user, ev)
	case EventText:
		if user.IsAdmin {
			e.handleAdminText(ctx, user, ev)
			return
		}

		e.handleUserText(ctx, user, ev)
	case EventMedia:
		if user.IsAdmin && e.handleAdminMedia(ctx, user, ev) {
			return
		}

		// An admin composing nothing gets the regular user treatment,
		// same as any end-user.
		e.handleUserMedia(ctx, user, ev)
	default:
		log.Printf("relay: unknown event kind %d", ev.Kind)
	}
}

func (e *Engine) handleStart(ctx context.Context, user *models.User) {
	if user.IsAdmin {
		e.sendMenu(ctx, user, localization.AdminPanel, [][]string{
			{ButtonActiveChats, ButtonBroadcast},
		})

		return
	}

	e.sendMenu(ctx, user, localization.WelcomeUser, [][]string{
		{ButtonFAQ},
		{ButtonStartChat},
	})
}

// handleCancel ends whatever the admin is composing: a bound dialog (the
// user is told it ended) or a pending broadcast. With neither active it is
// a strict no-op.
func (e *Engine) handleCancel(ctx context.Context, user *models.User) {
	if !user.IsAdmin {
		return
	}

	sess := e.sessions.Get(user.Id)

	switch {
	case sess.AdminTargetID != 0:
		target := sess.AdminTargetID
		e.sessions.Clear(user.Id, session.FieldAdminTarget)
		e.reply(ctx, user, localization.DialogEnded)

		if err := e.transport.SendText(ctx, target, localization.GetLocalizedText("en", localization.AdminDialogEnded)); err != nil {
			log.Printf("relay: notify %d about ended dialog: %v", target, err)
		}
	case sess.BroadcastMode:
		e.sessions.Clear(user.Id, session.FieldBroadcastMode)
		e.reply(ctx, user, localization.BroadcastCancelled)
	}
}

func (e *Engine) reply(ctx context.Context, user *models.User, textId string, args ...interface{}) {
	text := localization.GetLocalizedText(user.Lang, textId, args...)

	if err := e.transport.SendText(ctx, user.Id, text); err != nil {
		log.Printf("relay: reply to %d: %v", user.Id, err)
	}
}

func (e *Engine) sendMenu(ctx context.Context, user *models.User, textId string, rows [][]string) {
	text := localization.GetLocalizedText(user.Lang, textId)

	if err := e.transport.SendMenu(ctx, user.Id, text, rows); err != nil {
		log.Printf("relay: menu to %d: %v", user.Id, err)
	}
}

func (e *Engine) isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
