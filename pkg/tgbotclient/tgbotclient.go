// Package tgbotclient adapts the Telegram Bot API to the relay transport.
package tgbotclient

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"supportbot/internal/models"
	"supportbot/internal/relay"
)

type TgBotClient struct {
	*tgbotapi.BotAPI
}

func NewTgBotClient(botToken string, debug bool) (*TgBotClient, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)

	if err != nil {
		return nil, err
	}

	bot.Debug = debug

	return &TgBotClient{bot}, nil
}

func (c *TgBotClient) SendText(_ context.Context, to int64, text string) error {
	_, err := c.Send(tgbotapi.NewMessage(to, text))

	return err
}

func (c *TgBotClient) SendTextButtons(_ context.Context, to int64, text string, buttons []relay.Button) error {
	msg := tgbotapi.NewMessage(to, text)
	msg.ReplyMarkup = inlineKeyboard(buttons)

	_, err := c.Send(msg)

	return err
}

func (c *TgBotClient) SendMedia(_ context.Context, to int64, media models.Media, caption string) error {
	_, err := c.Send(mediaConfig(to, media, caption, nil))

	return err
}

func (c *TgBotClient) SendMediaButtons(_ context.Context, to int64, media models.Media, caption string, buttons []relay.Button) error {
	markup := inlineKeyboard(buttons)
	_, err := c.Send(mediaConfig(to, media, caption, &markup))

	return err
}

func (c *TgBotClient) SendMenu(_ context.Context, to int64, text string, rows [][]string) error {
	keyboardRows := make([][]tgbotapi.KeyboardButton, len(rows))

	for i, row := range rows {
		buttons := make([]tgbotapi.KeyboardButton, len(row))
		for j, label := range row {
			buttons[j] = tgbotapi.NewKeyboardButton(label)
		}
		keyboardRows[i] = buttons
	}

	msg := tgbotapi.NewMessage(to, text)
	msg.ReplyMarkup = tgbotapi.NewReplyKeyboard(keyboardRows...)

	_, err := c.Send(msg)

	return err
}

func (c *TgBotClient) AnswerCallback(_ context.Context, callbackId string, text string) error {
	_, err := c.Request(tgbotapi.NewCallback(callbackId, text))

	return err
}

func mediaConfig(to int64, media models.Media, caption string, markup *tgbotapi.InlineKeyboardMarkup) tgbotapi.Chattable {
	file := tgbotapi.FileID(media.FileID)

	switch media.Kind {
	case models.MediaDocument:
		cfg := tgbotapi.NewDocument(to, file)
		cfg.Caption = caption
		if markup != nil {
			cfg.ReplyMarkup = *markup
		}

		return cfg
	case models.MediaVoice:
		cfg := tgbotapi.NewVoice(to, file)
		cfg.Caption = caption
		if markup != nil {
			cfg.ReplyMarkup = *markup
		}

		return cfg
	case models.MediaVideoNote:
		// Video notes carry no caption.
		cfg := tgbotapi.NewVideoNote(to, 0, file)
		if markup != nil {
			cfg.ReplyMarkup = *markup
		}

		return cfg
	case models.MediaVideo:
		cfg := tgbotapi.NewVideo(to, file)
		cfg.Caption = caption
		if markup != nil {
			cfg.ReplyMarkup = *markup
		}

		return cfg
	default:
		cfg := tgbotapi.NewPhoto(to, file)
		cfg.Caption = caption
		if markup != nil {
			cfg.ReplyMarkup = *markup
		}

		return cfg
	}
}

func inlineKeyboard(buttons []relay.Button) tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, len(buttons))

	for i, button := range buttons {
		row[i] = tgbotapi.NewInlineKeyboardButtonData(button.Label, button.Token)
	}

	return tgbotapi.NewInlineKeyboardMarkup(row)
}
