package storage

import (
	"context"
	"errors"

	"supportbot/internal/models"
)

// ErrNotFound is returned when a referenced user or chat does not exist.
var ErrNotFound = errors.New("storage: not found")

type UserFilter struct {
	Username string
	Page     int64
	Limit    int64
}

type UserPage struct {
	Users []models.User
	Total int64
}

type Storage interface {
	Disconnect(ctx context.Context) error
	GetUserById(ctx context.Context, userId int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetOrCreateUser(ctx context.Context, userId int64, username string) (models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListAdmins(ctx context.Context) ([]models.User, error)
	ListUsersPage(ctx context.Context, filter UserFilter) (UserPage, error)
	CreateChat(ctx context.Context, userId int64, kind models.ChatType) (models.Chat, error)
	GetChatById(ctx context.Context, chatId int64) (models.Chat, error)
	UpdateChatStatus(ctx context.Context, chatId int64, status models.ChatStatus) error
	ListActiveChats(ctx context.Context) ([]models.Chat, error)
	ListActiveChatsByUser(ctx context.Context, userId int64) ([]models.Chat, error)
	InsertMessage(ctx context.Context, message models.Message) error
	LatestChatMessage(ctx context.Context, chatId int64) (models.Message, error)
}
