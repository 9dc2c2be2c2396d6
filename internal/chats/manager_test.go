package chats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"supportbot/internal/models"
	"supportbot/internal/storage"
	"supportbot/internal/storage/memory"
)

func newManager() (*Manager, *memory.Memory) {
	store := memory.New()
	store.SeedUser(models.User{Id: 100, Username: "alice"})
	store.SeedUser(models.User{Id: 101, Username: "bob"})

	return NewManager(store), store
}

func TestStartChatClosesPriorActiveChats(t *testing.T) {
	req := require.New(t)
	m, store := newManager()
	ctx := context.Background()

	first, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	second, err := m.StartChat(ctx, 100, models.ChatOrder)
	req.NoError(err)

	closed, err := store.GetChatById(ctx, first.Id)
	req.NoError(err)
	req.Equal(models.ChatClosed, closed.Status)

	active, err := store.ListActiveChatsByUser(ctx, 100)
	req.NoError(err)
	req.Len(active, 1)
	req.Equal(second.Id, active[0].Id)
}

func TestStartChatDoesNotTouchOtherUsers(t *testing.T) {
	req := require.New(t)
	m, store := newManager()
	ctx := context.Background()

	bobs, err := m.CreateChat(ctx, 101, models.ChatQuestion)
	req.NoError(err)

	_, err = m.StartChat(ctx, 100, models.ChatOrder)
	req.NoError(err)

	chat, err := store.GetChatById(ctx, bobs.Id)
	req.NoError(err)
	req.Equal(models.ChatActive, chat.Status)
}

func TestCloseIsIdempotent(t *testing.T) {
	req := require.New(t)
	m, _ := newManager()
	ctx := context.Background()

	chat, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	closed, edge, err := m.Close(ctx, chat.Id)
	req.NoError(err)
	req.True(edge)
	req.Equal(models.ChatClosed, closed.Status)

	closed, edge, err = m.Close(ctx, chat.Id)
	req.NoError(err)
	req.False(edge, "second close must not report a transition")
	req.Equal(models.ChatClosed, closed.Status)
}

func TestCloseUnknownChat(t *testing.T) {
	req := require.New(t)
	m, _ := newManager()

	_, _, err := m.Close(context.Background(), 404)
	req.ErrorIs(err, storage.ErrNotFound)
}

func TestActiveChatsOrderedByRecentActivity(t *testing.T) {
	req := require.New(t)
	m, store := newManager()
	ctx := context.Background()

	first, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	second, err := m.CreateChat(ctx, 101, models.ChatOrder)
	req.NoError(err)

	// Traffic lands in the older chat last, promoting it.
	req.NoError(store.InsertMessage(ctx, models.Message{ChatId: second.Id, UserId: 101, Text: "older"}))
	req.NoError(store.InsertMessage(ctx, models.Message{ChatId: first.Id, UserId: 100, Text: "newest"}))

	summaries, err := m.ActiveChats(ctx)
	req.NoError(err)
	req.Len(summaries, 2)
	req.Equal(first.Id, summaries[0].Chat.Id)
	req.Equal("newest", summaries[0].LastMessage.Text)
	req.Equal("alice", summaries[0].Owner.Username)
	req.Equal(second.Id, summaries[1].Chat.Id)
}

func TestActiveChatsWithoutTraffic(t *testing.T) {
	req := require.New(t)
	m, _ := newManager()
	ctx := context.Background()

	_, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	summaries, err := m.ActiveChats(ctx)
	req.NoError(err)
	req.Len(summaries, 1)
	req.Nil(summaries[0].LastMessage)
}

func TestResolveOwner(t *testing.T) {
	req := require.New(t)
	m, _ := newManager()
	ctx := context.Background()

	chat, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	owner, err := m.ResolveOwner(ctx, chat.Id)
	req.NoError(err)
	req.Equal("alice", owner.Username)

	_, err = m.ResolveOwner(ctx, 404)
	req.ErrorIs(err, storage.ErrNotFound)
}

func TestActiveChatByUser(t *testing.T) {
	req := require.New(t)
	m, _ := newManager()
	ctx := context.Background()

	_, err := m.ActiveChatByUser(ctx, 100)
	req.ErrorIs(err, storage.ErrNotFound)

	_, err = m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	latest, err := m.CreateChat(ctx, 100, models.ChatQuestion)
	req.NoError(err)

	chat, err := m.ActiveChatByUser(ctx, 100)
	req.NoError(err)
	req.Equal(latest.Id, chat.Id)
}
