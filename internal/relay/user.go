package relay

import (
	"context"
	"log"
	"time"

	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/session"
)

func (e *Engine) handleUserText(ctx context.Context, user *models.User, ev Event) {
	switch ev.Text {
	case ButtonFAQ:
		// Canned informational reply, no state change.
		e.reply(ctx, user, localization.FAQAnswer)

		return
	case ButtonStartChat:
		e.startConversation(ctx, user, models.ChatOrder)

		return
	}

	sess, ended := e.currentConversation(ctx, user)

	if ended {
		return
	}

	if !sess.AwaitingAdmin && sess.ActiveChatID == 0 {
		// Lazy path: open a fresh QUESTION chat for the message. Unlike
		// the explicit-start flow this leaves any other active chat of
		// the user untouched.
		chat, err := e.chats.CreateChat(ctx, user.Id, models.ChatQuestion)

		if err != nil {
			log.Printf("relay: create chat for %d: %v", user.Id, err)
			e.reply(ctx, user, localization.SendFailed)

			return
		}

		e.sessions.Mutate(user.Id, func(s *session.Session) {
			s.ActiveChatID = chat.Id
			s.ConversationKind = models.ChatQuestion
		})
		sess.ActiveChatID = chat.Id
		sess.ConversationKind = models.ChatQuestion
	}

	e.forwardToAdmins(ctx, user, ev, sess)
}

func (e *Engine) handleUserMedia(ctx context.Context, user *models.User, ev Event) {
	sess, ended := e.currentConversation(ctx, user)

	if ended {
		return
	}

	if sess.ActiveChatID == 0 {
		chat, err := e.chats.CreateChat(ctx, user.Id, models.ChatQuestion)

		if err != nil {
			log.Printf("relay: create chat for %d: %v", user.Id, err)
			e.reply(ctx, user, localization.SendFailed)

			return
		}

		e.sessions.Mutate(user.Id, func(s *session.Session) {
			s.ActiveChatID = chat.Id
			s.ConversationKind = models.ChatQuestion
		})
		sess.ActiveChatID = chat.Id
		sess.ConversationKind = models.ChatQuestion
	}

	e.forwardToAdmins(ctx, user, ev, sess)
}

// currentConversation snapshots the session and intercepts the stray-message
// case: when the session still points at a chat an admin has closed, the
// chat fields are cleared and the user is told to start over. The stray
// message itself is never forwarded.
func (e *Engine) currentConversation(ctx context.Context, user *models.User) (session.Session, bool) {
	sess := e.sessions.Get(user.Id)

	if sess.ActiveChatID == 0 {
		return sess, false
	}

	chat, err := e.storage.GetChatById(ctx, sess.ActiveChatID)

	if err != nil {
		log.Printf("relay: load chat %d: %v", sess.ActiveChatID, err)

		return sess, false
	}

	if chat.Status != models.ChatClosed {
		return sess, false
	}

	e.sessions.Clear(user.Id, session.FieldActiveChat, session.FieldAwaitingAdmin)
	e.reply(ctx, user, localization.ChatClosedNotice)

	return session.Session{}, true
}

// startConversation is the explicit-start flow: the previous active chat is
// closed before the new one opens.
func (e *Engine) startConversation(ctx context.Context, user *models.User, kind models.ChatType) {
	chat, err := e.chats.StartChat(ctx, user.Id, kind)

	if err != nil {
		log.Printf("relay: start chat for %d: %v", user.Id, err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	e.sessions.Mutate(user.Id, func(s *session.Session) {
		s.ConversationKind = kind
		s.ActiveChatID = chat.Id
		s.AwaitingAdmin = true
	})
	e.reply(ctx, user, localization.DescribeOrder)
}

// forwardToAdmins fans the message out to every admin, embedding the
// sender's identity as an "ID:" line so a later plain-text reply can be
// routed back. A failed send to one admin never blocks the others.
func (e *Engine) forwardToAdmins(ctx context.Context, user *models.User, ev Event, sess session.Session) {
	if sess.ActiveChatID == 0 {
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	admins, err := e.storage.ListAdmins(ctx)

	if err != nil {
		log.Printf("relay: list admins: %v", err)
		e.reply(ctx, user, localization.SendFailed)

		return
	}

	buttons := []Button{
		{
			Label: localization.GetLocalizedText("en", localization.ReplyButton),
			Token: ReplyToken(sess.ActiveChatID),
		},
	}

	if ev.Kind == EventMedia {
		note := localization.GetLocalizedText("en", localization.NotificationMedia, user.DisplayName(), user.Id)
		if ev.Caption != "" {
			note += "\nText: " + ev.Caption
		}

		for _, admin := range admins {
			if err := e.transport.SendMediaButtons(ctx, admin.Id, *ev.Media, note, buttons); err != nil {
				log.Printf("relay: media to admin %d: %v", admin.Id, err)
			}
		}

		e.reply(ctx, user, localization.MediaForwarded)

		return
	}

	err = e.storage.InsertMessage(ctx, models.Message{
		ChatId:    sess.ActiveChatID,
		UserId:    user.Id,
		Username:  user.Username,
		Text:      ev.Text,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	})

	if err != nil {
		log.Printf("relay: record message in chat %d: %v", sess.ActiveChatID, err)
	}

	note := localization.GetLocalizedText(
		"en",
		localization.NotificationText,
		notificationKindWord(sess.ConversationKind),
		user.DisplayName(),
		user.Id,
		ev.Text,
	)

	for _, admin := range admins {
		if err := e.transport.SendTextButtons(ctx, admin.Id, note, buttons); err != nil {
			log.Printf("relay: notify admin %d: %v", admin.Id, err)
		}
	}

	e.reply(ctx, user, localization.MessageForwarded)
}

func notificationKindWord(kind models.ChatType) string {
	if kind == models.ChatOrder {
		return "order"
	}

	return "question"
}
