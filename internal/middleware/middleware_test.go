package middleware

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/relay"
	"supportbot/internal/storage/memory"
)

type noopTransport struct {
	texts map[int64]string
}

func (t *noopTransport) SendText(_ context.Context, to int64, text string) error {
	t.texts[to] = text

	return nil
}

func (t *noopTransport) SendMedia(context.Context, int64, models.Media, string) error {
	return nil
}

func (t *noopTransport) SendTextButtons(context.Context, int64, string, []relay.Button) error {
	return nil
}

func (t *noopTransport) SendMediaButtons(context.Context, int64, models.Media, string, []relay.Button) error {
	return nil
}

func (t *noopTransport) SendMenu(context.Context, int64, string, [][]string) error {
	return nil
}

func (t *noopTransport) AnswerCallback(context.Context, string, string) error {
	return nil
}

func TestCurrentUserCreatesRecordAndCarriesLanguage(t *testing.T) {
	req := require.New(t)
	store := memory.New()

	var seen *models.User
	handle := CurrentUser(store, func(_ context.Context, user *models.User, _ relay.Event) {
		seen = user
	})

	handle(context.Background(), relay.Event{
		Kind: relay.EventText,
		From: relay.Identity{ID: 100, Username: "alice", Lang: "ru"},
		Text: "hi",
	})

	req.NotNil(seen)
	req.EqualValues(100, seen.Id)
	req.Equal("alice", seen.Username)
	req.Equal("ru", seen.Lang)

	stored, err := store.GetUserById(context.Background(), 100)
	req.NoError(err)
	req.Equal("alice", stored.Username)
}

func TestCurrentUserRefreshesChangedUsername(t *testing.T) {
	req := require.New(t)
	store := memory.New()
	store.SeedUser(models.User{Id: 100, Username: "old_name"})

	handle := CurrentUser(store, func(context.Context, *models.User, relay.Event) {})
	handle(context.Background(), relay.Event{From: relay.Identity{ID: 100, Username: "new_name"}})

	stored, err := store.GetUserById(context.Background(), 100)
	req.NoError(err)
	req.Equal("new_name", stored.Username)
}

func TestBanCheckStopsBannedUsers(t *testing.T) {
	req := require.New(t)
	transport := &noopTransport{texts: make(map[int64]string)}

	called := false
	handle := BanCheck(transport, func(context.Context, *models.User, relay.Event) {
		called = true
	})

	banned := models.User{Id: 100, Username: "alice", IsBanned: true}
	handle(context.Background(), &banned, relay.Event{Kind: relay.EventText, Text: "hi"})

	req.False(called, "banned user must not reach the next handler")
	req.Equal(localization.GetLocalizedText("en", localization.UserBanned), transport.texts[100])
}

func TestBanCheckPassesRegularUsers(t *testing.T) {
	req := require.New(t)
	transport := &noopTransport{texts: make(map[int64]string)}

	called := false
	handle := BanCheck(transport, func(context.Context, *models.User, relay.Event) {
		called = true
	})

	user := models.User{Id: 100, Username: "alice"}
	handle(context.Background(), &user, relay.Event{Kind: relay.EventText, Text: "hi"})

	req.True(called)
	req.Empty(transport.texts)
}
