package models

import "time"

type User struct {
	Id        int64     `bson:"id"`
	Username  string    `bson:"username"`
	IsAdmin   bool      `bson:"is_admin"`
	IsBanned  bool      `bson:"is_banned"`
	CreatedAt time.Time `bson:"created_at"`

	// Lang is the sender's Telegram language code, carried per update and
	// never persisted.
	Lang string `bson:"-"`
}

func (u User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}

	return "user"
}
