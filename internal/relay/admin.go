package relay

import (
	"context"
	"log"
	"time"

	"github.com/samber/lo"
	"supportbot/internal/broadcast"
	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/session"
)

func (e *Engine) handleAdminText(ctx context.Context, user *models.User, ev Event) {
	switch ev.Text {
	case ButtonActiveChats:
		e.showActiveChats(ctx, user)

		return
	case ButtonBroadcast:
		e.sessions.Mutate(user.Id, func(s *session.Session) {
			s.BroadcastMode = true
			s.AdminTargetID = 0
		})
		e.reply(ctx, user, localization.BroadcastPrompt)

		return
	}

	sess := e.sessions.Get(user.Id)

	if sess.AdminTargetID != 0 {
		e.forwardToTarget(ctx, user, sess.AdminTargetID, ev)

		return
	}

	if sess.BroadcastMode {
		e.runBroadcast(ctx, user, broadcast.Payload{Text: ev.Text})

		return
	}

	e.handleReplyFallback(ctx, user, ev)
}

// handleAdminMedia covers the admin-specific media transitions. It reports
// false when no admin state applies so the event falls through to the user
// branch.
func (e *Engine) handleAdminMedia(ctx context.Context, user *models.User, ev Event) bool {
	sess := e.sessions.Get(user.Id)

	if sess.BroadcastMode {
		e.runBroadcast(ctx, user, broadcast.Payload{Media: ev.Media, Caption: ev.Caption})

		return true
	}

	if sess.AdminTargetID != 0 {
		e.forwardToTarget(ctx, user, sess.AdminTargetID, ev)

		return true
	}

	return false
}

// forwardToTarget delivers an admin message verbatim to the bound user and
// keeps the binding open for continued replies.
func (e *Engine) forwardToTarget(ctx context.Context, user *models.User, target int64, ev Event) {
	var err error
	ack := localization.AdminMessageSent

	if ev.Kind == EventMedia {
		ack = localization.AdminMediaSent
		err = e.transport.SendMedia(ctx, target, *ev.Media, ev.Caption)
	} else {
		err = e.transport.SendText(ctx, target, ev.Text)
	}

	if err != nil {
		log.Printf("relay: forward from admin %d to %d: %v", user.Id, target, err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	e.reply(ctx, user, ack)
}

func (e *Engine) runBroadcast(ctx context.Context, user *models.User, payload broadcast.Payload) {
	defer e.sessions.Clear(user.Id, session.FieldBroadcastMode)

	users, err := e.storage.ListUsers(ctx)

	if err != nil {
		log.Printf("relay: broadcast roster: %v", err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	recipients := lo.Map(users, func(u models.User, _ int) int64 { return u.Id })
	result := e.broadcast.Broadcast(ctx, payload, recipients)

	e.reply(ctx, user, localization.BroadcastReport, result.Succeeded, result.Failed)
}

// handleReplyFallback treats a plain admin message as a reply to a forwarded
// notification: the bound identity is recovered from the replied-to text and
// the admin stays bound to that user for continuation. A marker pointing at
// a user without an active chat is reported back, never dropped silently.
func (e *Engine) handleReplyFallback(ctx context.Context, user *models.User, ev Event) {
	if ev.ReplyTo == nil {
		return
	}

	target, ok := resolveBoundIdentity(ev.ReplyTo.Text)

	if !ok {
		return
	}

	chat, err := e.chats.ActiveChatByUser(ctx, target)

	if err != nil {
		if !e.isNotFound(err) {
			log.Printf("relay: resolve active chat of %d: %v", target, err)
		}

		e.reply(ctx, user, localization.ChatUnavailable)

		return
	}

	err = e.storage.InsertMessage(ctx, models.Message{
		ChatId:    chat.Id,
		UserId:    user.Id,
		Username:  user.Username,
		Text:      ev.Text,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	})

	if err != nil {
		log.Printf("relay: record admin message in chat %d: %v", chat.Id, err)
	}

	if err := e.transport.SendText(ctx, target, ev.Text); err != nil {
		log.Printf("relay: deliver admin reply to %d: %v", target, err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	e.reply(ctx, user, localization.AdminMessageSent)
	e.sessions.Mutate(user.Id, func(s *session.Session) {
		s.AdminTargetID = target
	})
}

func (e *Engine) showActiveChats(ctx context.Context, user *models.User) {
	summaries, err := e.chats.ActiveChats(ctx)

	if err != nil {
		log.Printf("relay: list active chats: %v", err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	if len(summaries) == 0 {
		e.reply(ctx, user, localization.NoActiveChats)

		return
	}

	for _, summary := range summaries {
		preview := localization.GetLocalizedText(user.Lang, localization.NoMessagesYet)
		if summary.LastMessage != nil {
			preview = summary.LastMessage.Text
		}

		text := localization.GetLocalizedText(
			user.Lang,
			localization.ChatSummary,
			e.chatTypeLabel(user.Lang, summary.Chat.Type),
			summary.Owner.DisplayName(),
			preview,
		)
		buttons := []Button{
			{Label: localization.GetLocalizedText(user.Lang, localization.ReplyButton), Token: ReplyToken(summary.Chat.Id)},
			{Label: localization.GetLocalizedText(user.Lang, localization.CloseButton), Token: CloseToken(summary.Chat.Id)},
		}

		if err := e.transport.SendTextButtons(ctx, user.Id, text, buttons); err != nil {
			log.Printf("relay: chat summary to %d: %v", user.Id, err)
		}
	}
}

func (e *Engine) handleButton(ctx context.Context, user *models.User, ev Event) {
	if ev.Callback == nil {
		return
	}

	action, err := ParseAction(ev.Callback.Data)

	if err != nil {
		log.Printf("relay: ignoring callback %q: %v", ev.Callback.Data, err)

		return
	}

	// Only admins are ever sent callback keyboards.
	if !user.IsAdmin {
		return
	}

	switch action.Kind {
	case ActionReply:
		e.handleReplyAction(ctx, user, action.ChatID)
	case ActionClose:
		e.handleCloseAction(ctx, user, action.ChatID)
	}

	if err := e.transport.AnswerCallback(ctx, ev.Callback.ID, ""); err != nil {
		log.Printf("relay: answer callback: %v", err)
	}
}

// handleReplyAction is the explicit "take": the admin's next messages route
// to the chat owner. A stale button for a closed chat leaves the session
// untouched.
func (e *Engine) handleReplyAction(ctx context.Context, user *models.User, chatId int64) {
	chat, err := e.storage.GetChatById(ctx, chatId)

	if err != nil {
		if !e.isNotFound(err) {
			log.Printf("relay: take chat %d: %v", chatId, err)
		}

		e.reply(ctx, user, localization.ChatUnavailable)

		return
	}

	if chat.Status == models.ChatClosed {
		e.reply(ctx, user, localization.ChatAlreadyClosed)

		return
	}

	e.sessions.Mutate(user.Id, func(s *session.Session) {
		s.AdminTargetID = chat.UserId
		s.BroadcastMode = false
	})
	e.reply(ctx, user, localization.AdminReplyPrompt)
}

func (e *Engine) handleCloseAction(ctx context.Context, user *models.User, chatId int64) {
	chat, closedNow, err := e.chats.Close(ctx, chatId)

	if err != nil {
		if !e.isNotFound(err) {
			log.Printf("relay: close chat %d: %v", chatId, err)
		}

		e.reply(ctx, user, localization.ChatUnavailable)

		return
	}

	if closedNow {
		notice := localization.GetLocalizedText("en", localization.ChatClosedByAdmin)

		if err := e.transport.SendText(ctx, chat.UserId, notice); err != nil {
			log.Printf("relay: notify %d about closed chat: %v", chat.UserId, err)
		}
	}

	e.reply(ctx, user, localization.ChatClosedAck)
}

func (e *Engine) chatTypeLabel(lang string, kind models.ChatType) string {
	if kind == models.ChatOrder {
		return localization.GetLocalizedText(lang, localization.TypeOrder)
	}

	return localization.GetLocalizedText(lang, localization.TypeQuestion)
}
