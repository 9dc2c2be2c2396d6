package localization

import "fmt"

const (
	WelcomeUser        = "welcomeUser"
	AdminPanel         = "adminPanel"
	UserBanned         = "userBanned"
	FAQAnswer          = "faqAnswer"
	DescribeOrder      = "describeOrder"
	ChatClosedNotice   = "chatClosedNotice"
	ChatClosedByAdmin  = "chatClosedByAdmin"
	ChatClosedAck      = "chatClosedAck"
	ChatAlreadyClosed  = "chatAlreadyClosed"
	ChatUnavailable    = "chatUnavailable"
	MessageForwarded   = "messageForwarded"
	MediaForwarded     = "mediaForwarded"
	SendFailed         = "sendFailed"
	AdminReplyPrompt   = "adminReplyPrompt"
	AdminMessageSent   = "adminMessageSent"
	AdminMediaSent     = "adminMediaSent"
	BroadcastPrompt    = "broadcastPrompt"
	BroadcastReport    = "broadcastReport"
	BroadcastCancelled = "broadcastCancelled"
	DialogEnded        = "dialogEnded"
	AdminDialogEnded   = "adminDialogEnded"
	NoActiveChats      = "noActiveChats"
	ChatSummary        = "chatSummary"
	NoMessagesYet      = "noMessagesYet"
	TypeQuestion       = "typeQuestion"
	TypeOrder          = "typeOrder"
	NotificationText   = "notificationText"
	NotificationMedia  = "notificationMedia"
	ReplyButton        = "replyButton"
	CloseButton        = "closeButton"
)

var (
	messages = map[string]map[string]string{
		"en": {
			WelcomeUser:        "Write your message and an administrator will reply to you shortly",
			AdminPanel:         "Administrator panel",
			UserBanned:         "You have been banned",
			FAQAnswer:          "How to place an order:\n\n1. Courier delivery\n   - Exact delivery address\n   - Recipient's full name\n   - Contact phone number\n\n2. Pickup point\n   - Pickup point address or exact delivery address\n   - Recipient's full name\n   - Contact phone number\n\n3. Postal service\n   - Full postal address with zip code\n   - Recipient's full name\n   - Contact phone number\n\nTo place an order press the button below and follow the instructions",
			DescribeOrder:      "Describe your order or question",
			ChatClosedNotice:   "This chat has been closed. Press the button below to start a new chat.",
			ChatClosedByAdmin:  "Your chat was closed by an administrator",
			ChatClosedAck:      "Chat closed",
			ChatAlreadyClosed:  "This chat is already closed",
			ChatUnavailable:    "Error: user chat not found or closed",
			MessageForwarded:   "Your message has been sent. Await an administrator's reply.",
			MediaForwarded:     "Your media message has been sent. Await an administrator's reply.",
			SendFailed:         "Failed, try again",
			AdminReplyPrompt:   "Type your reply to the user (or /cancel to finish)",
			AdminMessageSent:   "Message sent. Keep writing or use /cancel to finish",
			AdminMediaSent:     "Media message sent. Keep writing or use /cancel to finish",
			BroadcastPrompt:    "Send the broadcast message (photos and files allowed). Use /cancel to abort",
			BroadcastReport:    "Broadcast finished!\nDelivered: %d\nFailed: %d",
			BroadcastCancelled: "Broadcast cancelled",
			DialogEnded:        "Dialog with the user finished",
			AdminDialogEnded:   "The administrator has ended the dialog",
			NoActiveChats:      "No active chats",
			ChatSummary:        "Type: %s\nFrom user: %s\nLast message: %s",
			NoMessagesYet:      "No messages",
			TypeQuestion:       "❓ Question",
			TypeOrder:          "🛍 Order",
			NotificationText:   "New %s\nFrom: %s\nID: %d\nMessage: %s",
			NotificationMedia:  "New media message\nFrom: %s\nID: %d",
			ReplyButton:        "✍️ Reply",
			CloseButton:        "❌ Close chat",
		},
		"ru": {
			WelcomeUser:        "Напишите ваше сообщение, и администратор ответит вам в ближайшее время",
			AdminPanel:         "Панель администратора",
			UserBanned:         "Вы были забанены",
			DescribeOrder:      "Опишите ваш заказ или вопрос",
			ChatClosedNotice:   "Этот чат был закрыт. Нажмите кнопку ниже, чтобы начать новый чат.",
			ChatClosedByAdmin:  "Ваш чат был закрыт администратором",
			ChatClosedAck:      "Чат закрыт",
			ChatAlreadyClosed:  "Этот чат уже закрыт",
			ChatUnavailable:    "Ошибка: чат с пользователем не найден или закрыт",
			MessageForwarded:   "Ваше сообщение отправлено. Ожидайте ответа администратора.",
			MediaForwarded:     "Ваше медиа-сообщение отправлено. Ожидайте ответа администратора.",
			SendFailed:         "Не получилось, попробуйте еще раз",
			AdminReplyPrompt:   "Введите ваш ответ пользователю (или /cancel для завершения)",
			AdminMessageSent:   "Сообщение отправлено. Продолжайте писать или используйте /cancel для завершения",
			AdminMediaSent:     "Медиа-сообщение отправлено. Продолжайте писать или используйте /cancel для завершения",
			BroadcastPrompt:    "Отправьте сообщение для массовой рассылки (можно с фото или файлами). Для отмены используйте /cancel",
			BroadcastReport:    "Рассылка завершена!\nУспешно отправлено: %d\nОшибок отправки: %d",
			BroadcastCancelled: "Рассылка отменена",
			DialogEnded:        "Диалог с пользователем завершен",
			AdminDialogEnded:   "Администратор завершил диалог",
			NoActiveChats:      "Нет активных чатов",
		},
	}
)

func GetLocalizedText(lang string, textId string, args ...interface{}) string {
	if _, ok := messages[lang][textId]; !ok {
		lang = "en"
	}

	message, ok := messages[lang][textId]

	if !ok {
		return textId
	}

	if len(args) == 0 {
		return message
	}

	return fmt.Sprintf(message, args...)
}
