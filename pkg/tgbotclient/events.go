package tgbotclient

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"supportbot/internal/models"
	"supportbot/internal/relay"
)

// ToEvent maps a Telegram update onto the relay event model. The second
// return value is false for update kinds the relay does not consume.
func ToEvent(update *tgbotapi.Update) (relay.Event, bool) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery

		return relay.Event{
			Kind:     relay.EventButton,
			From:     identityOf(cq.From),
			Callback: &relay.CallbackRef{ID: cq.ID, Data: cq.Data},
		}, true
	case update.Message != nil:
		return messageEvent(update.Message)
	default:
		return relay.Event{}, false
	}
}

func messageEvent(m *tgbotapi.Message) (relay.Event, bool) {
	ev := relay.Event{From: identityOf(m.From), ReplyTo: replyRef(m)}

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			ev.Kind = relay.EventStart

			return ev, true
		case "cancel":
			ev.Kind = relay.EventCancel

			return ev, true
		}
		// Unknown commands relay like ordinary text.
	}

	if media, ok := mediaOf(m); ok {
		ev.Kind = relay.EventMedia
		ev.Media = &media
		ev.Caption = m.Caption

		return ev, true
	}

	if m.Text != "" {
		ev.Kind = relay.EventText
		ev.Text = m.Text

		return ev, true
	}

	return relay.Event{}, false
}

func mediaOf(m *tgbotapi.Message) (models.Media, bool) {
	switch {
	case len(m.Photo) > 0:
		// The last size is the largest one.
		return models.Media{Kind: models.MediaPhoto, FileID: m.Photo[len(m.Photo)-1].FileID}, true
	case m.Document != nil:
		return models.Media{Kind: models.MediaDocument, FileID: m.Document.FileID}, true
	case m.Voice != nil:
		return models.Media{Kind: models.MediaVoice, FileID: m.Voice.FileID}, true
	case m.VideoNote != nil:
		return models.Media{Kind: models.MediaVideoNote, FileID: m.VideoNote.FileID}, true
	case m.Video != nil:
		return models.Media{Kind: models.MediaVideo, FileID: m.Video.FileID}, true
	default:
		return models.Media{}, false
	}
}

func replyRef(m *tgbotapi.Message) *relay.ReplyRef {
	if m.ReplyToMessage == nil {
		return nil
	}

	text := m.ReplyToMessage.Text
	if text == "" {
		text = m.ReplyToMessage.Caption
	}

	return &relay.ReplyRef{Text: text}
}

func identityOf(from *tgbotapi.User) relay.Identity {
	if from == nil {
		return relay.Identity{}
	}

	return relay.Identity{
		ID:       from.ID,
		Username: from.UserName,
		Lang:     from.LanguageCode,
	}
}
