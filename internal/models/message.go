package models

import "time"

// Message is one entry of the append-only relay audit log.
type Message struct {
	ChatId    int64     `bson:"chat_id"`
	UserId    int64     `bson:"user_id"`
	Username  string    `bson:"username"`
	Text      string    `bson:"text"`
	IsAdmin   bool      `bson:"is_admin"`
	CreatedAt time.Time `bson:"created_at"`
}
