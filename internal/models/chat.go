package models

import "time"

type ChatType string

const (
	ChatQuestion ChatType = "QUESTION"
	ChatOrder    ChatType = "ORDER"
)

type ChatStatus string

const (
	ChatActive ChatStatus = "ACTIVE"
	ChatClosed ChatStatus = "CLOSED"
)

// Chat is a bounded conversation thread between one user and the admin pool.
// Ids are numeric so that callback tokens can carry them.
type Chat struct {
	Id        int64      `bson:"id"`
	UserId    int64      `bson:"user_id"`
	Type      ChatType   `bson:"type"`
	Status    ChatStatus `bson:"status"`
	CreatedAt time.Time  `bson:"created_at"`
}
