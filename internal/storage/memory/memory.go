// Package memory holds a map-backed Storage used by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"supportbot/internal/models"
	"supportbot/internal/storage"
)

type Memory struct {
	mu       sync.Mutex
	users    map[int64]models.User
	chats    map[int64]models.Chat
	messages []models.Message
	seq      int64
	now      time.Time
}

func New() *Memory {
	return &Memory{
		users: make(map[int64]models.User),
		chats: make(map[int64]models.Chat),
		now:   time.Now().UTC(),
	}
}

func (m *Memory) Disconnect(_ context.Context) error {
	return nil
}

func (m *Memory) GetUserById(_ context.Context, userId int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userId]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}

	return user, nil
}

func (m *Memory) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}

	return models.User{}, storage.ErrNotFound
}

func (m *Memory) GetOrCreateUser(_ context.Context, userId int64, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[userId]
	if !ok {
		user = models.User{Id: userId, CreatedAt: m.tick()}
	}

	user.Username = username
	m.users[userId] = user

	return user, nil
}

func (m *Memory) UpdateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Id]; !ok {
		return storage.ErrNotFound
	}

	m.users[user.Id] = *user

	return nil
}

func (m *Memory) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedUsers(func(models.User) bool { return true }), nil
}

func (m *Memory) ListAdmins(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.sortedUsers(func(u models.User) bool { return u.IsAdmin }), nil
}

func (m *Memory) ListUsersPage(_ context.Context, filter storage.UserFilter) (storage.UserPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := m.sortedUsers(func(u models.User) bool {
		return filter.Username == "" ||
			strings.Contains(strings.ToLower(u.Username), strings.ToLower(filter.Username))
	})

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := storage.UserPage{Total: int64(len(matched))}
	from := (filter.Page - 1) * filter.Limit
	to := from + filter.Limit

	if from > page.Total {
		from = page.Total
	}
	if to > page.Total {
		to = page.Total
	}

	page.Users = matched[from:to]

	return page, nil
}

func (m *Memory) CreateChat(_ context.Context, userId int64, kind models.ChatType) (models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	chat := models.Chat{
		Id:        m.seq,
		UserId:    userId,
		Type:      kind,
		Status:    models.ChatActive,
		CreatedAt: m.tick(),
	}
	m.chats[chat.Id] = chat

	return chat, nil
}

func (m *Memory) GetChatById(_ context.Context, chatId int64) (models.Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat, ok := m.chats[chatId]
	if !ok {
		return models.Chat{}, storage.ErrNotFound
	}

	return chat, nil
}

func (m *Memory) UpdateChatStatus(_ context.Context, chatId int64, status models.ChatStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	chat, ok := m.chats[chatId]
	if !ok {
		return storage.ErrNotFound
	}

	chat.Status = status
	m.chats[chatId] = chat

	return nil
}

func (m *Memory) ListActiveChats(_ context.Context) ([]models.Chat, error) {
	return m.listChats(func(c models.Chat) bool { return c.Status == models.ChatActive }), nil
}

func (m *Memory) ListActiveChatsByUser(_ context.Context, userId int64) ([]models.Chat, error) {
	return m.listChats(func(c models.Chat) bool {
		return c.Status == models.ChatActive && c.UserId == userId
	}), nil
}

func (m *Memory) InsertMessage(_ context.Context, message models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if message.CreatedAt.IsZero() {
		message.CreatedAt = m.tick()
	}

	m.messages = append(m.messages, message)

	return nil
}

func (m *Memory) LatestChatMessage(_ context.Context, chatId int64) (models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].ChatId == chatId {
			return m.messages[i], nil
		}
	}

	return models.Message{}, storage.ErrNotFound
}

// MessagesByChat exposes the audit log for assertions.
func (m *Memory) MessagesByChat(chatId int64) []models.Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []models.Message

	for _, msg := range m.messages {
		if msg.ChatId == chatId {
			items = append(items, msg)
		}
	}

	return items
}

// SeedUser installs a user record directly, bypassing upsert defaults.
func (m *Memory) SeedUser(user models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user.CreatedAt.IsZero() {
		user.CreatedAt = m.tick()
	}

	m.users[user.Id] = user
}

func (m *Memory) listChats(keep func(models.Chat) bool) []models.Chat {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]models.Chat, 0)

	for _, chat := range m.chats {
		if keep(chat) {
			items = append(items, chat)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Id > items[j].Id })

	return items
}

func (m *Memory) sortedUsers(keep func(models.User) bool) []models.User {
	items := make([]models.User, 0)

	for _, user := range m.users {
		if keep(user) {
			items = append(items, user)
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Id < items[j].Id })

	return items
}

// tick hands out strictly increasing timestamps so ordering assertions are
// deterministic even within one wall-clock instant.
func (m *Memory) tick() time.Time {
	m.now = m.now.Add(time.Millisecond)

	return m.now
}
