// Package chats owns the chat lifecycle: opening, closing and resolving the
// user a chat belongs to.
package chats

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"supportbot/internal/models"
	"supportbot/internal/storage"
)

// Summary pairs an active chat with its owner and latest message for the
// admin-facing overview. LastMessage is nil for chats without traffic yet.
type Summary struct {
	Chat        models.Chat
	Owner       models.User
	LastMessage *models.Message
}

type Manager struct {
	storage storage.Storage
}

func NewManager(storage storage.Storage) *Manager {
	return &Manager{storage: storage}
}

// StartChat opens a chat through the explicit-start flow: any prior ACTIVE
// chat owned by the same user is closed first, so the user ends up with
// exactly one active chat.
func (m *Manager) StartChat(ctx context.Context, userId int64, kind models.ChatType) (models.Chat, error) {
	active, err := m.storage.ListActiveChatsByUser(ctx, userId)

	if err != nil {
		return models.Chat{}, err
	}

	for _, chat := range active {
		if err := m.storage.UpdateChatStatus(ctx, chat.Id, models.ChatClosed); err != nil {
			return models.Chat{}, err
		}
	}

	return m.storage.CreateChat(ctx, userId, kind)
}

// CreateChat opens a chat without touching the user's other chats. This is
// the lazy per-message path and intentionally does not enforce the
// one-active-chat invariant that StartChat provides.
func (m *Manager) CreateChat(ctx context.Context, userId int64, kind models.ChatType) (models.Chat, error) {
	return m.storage.CreateChat(ctx, userId, kind)
}

// Close moves the chat to CLOSED. Closing an already closed chat is a no-op;
// the returned flag reports whether this call performed the transition, so
// callers notify the owner at most once.
func (m *Manager) Close(ctx context.Context, chatId int64) (models.Chat, bool, error) {
	chat, err := m.storage.GetChatById(ctx, chatId)

	if err != nil {
		return models.Chat{}, false, err
	}

	if chat.Status == models.ChatClosed {
		return chat, false, nil
	}

	if err := m.storage.UpdateChatStatus(ctx, chat.Id, models.ChatClosed); err != nil {
		return models.Chat{}, false, err
	}

	chat.Status = models.ChatClosed

	return chat, true, nil
}

// ActiveChats lists ACTIVE chats with owner and latest message attached,
// most recently active first.
func (m *Manager) ActiveChats(ctx context.Context) ([]Summary, error) {
	chats, err := m.storage.ListActiveChats(ctx)

	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(chats))

	for _, chat := range chats {
		summary := Summary{Chat: chat}

		owner, err := m.storage.GetUserById(ctx, chat.UserId)
		if err != nil {
			log.Printf("chats: owner %d of chat %d missing: %v", chat.UserId, chat.Id, err)
			owner = models.User{Id: chat.UserId}
		}
		summary.Owner = owner

		last, err := m.storage.LatestChatMessage(ctx, chat.Id)
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].lastActivity().After(summaries[j].lastActivity())
	})

	return summaries, nil
}

// ResolveOwner returns the user owning the chat.
func (m *Manager) ResolveOwner(ctx context.Context, chatId int64) (models.User, error) {
	chat, err := m.storage.GetChatById(ctx, chatId)

	if err != nil {
		return models.User{}, err
	}

	return m.storage.GetUserById(ctx, chat.UserId)
}

// ActiveChatByUser returns the user's most recent ACTIVE chat, or
// storage.ErrNotFound when they have none.
func (m *Manager) ActiveChatByUser(ctx context.Context, userId int64) (models.Chat, error) {
	active, err := m.storage.ListActiveChatsByUser(ctx, userId)

	if err != nil {
		return models.Chat{}, err
	}

	if len(active) == 0 {
		return models.Chat{}, storage.ErrNotFound
	}

	return active[0], nil
}

func (s Summary) lastActivity() time.Time {
	if s.LastMessage != nil {
		return s.LastMessage.CreatedAt
	}

	return s.Chat.CreatedAt
}
