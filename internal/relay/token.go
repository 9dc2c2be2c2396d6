package relay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Callback tokens are the fixed wire contract between the summaries the bot
// sends to admins and the button presses that come back.
const (
	replyTokenPrefix = "reply_"
	closeTokenPrefix = "close_"
)

type ActionKind int

const (
	ActionReply ActionKind = iota
	ActionClose
)

type Action struct {
	Kind   ActionKind
	ChatID int64
}

var errMalformedToken = errors.New("relay: malformed callback token")

func ReplyToken(chatId int64) string {
	return fmt.Sprintf("%s%d", replyTokenPrefix, chatId)
}

func CloseToken(chatId int64) string {
	return fmt.Sprintf("%s%d", closeTokenPrefix, chatId)
}

func ParseAction(data string) (Action, error) {
	var action Action
	var raw string

	switch {
	case strings.HasPrefix(data, replyTokenPrefix):
		action.Kind = ActionReply
		raw = strings.TrimPrefix(data, replyTokenPrefix)
	case strings.HasPrefix(data, closeTokenPrefix):
		action.Kind = ActionClose
		raw = strings.TrimPrefix(data, closeTokenPrefix)
	default:
		return Action{}, errMalformedToken
	}

	chatId, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		return Action{}, errMalformedToken
	}

	action.ChatID = chatId

	return action, nil
}
