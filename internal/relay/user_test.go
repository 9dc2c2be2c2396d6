package relay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"supportbot/internal/localization"
	"supportbot/internal/models"
	"supportbot/internal/session"
)

func TestFAQReplyHasNoSideEffects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	f.engine.Handle(ctx, &f.alice, text(f.alice, ButtonFAQ))

	req.Equal([]string{en(localization.FAQAnswer)}, f.transport.textsTo(aliceId))
	req.Empty(f.transport.sentTo(adminId))
	req.Equal(session.Session{}, f.sessions.Get(aliceId))

	_, err := f.store.GetChatById(ctx, 1)
	req.Error(err)
}

func TestClosedChatMessageIsNeverForwarded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	f.engine.Handle(ctx, &f.alice, text(f.alice, "help me"))
	f.engine.Handle(ctx, &f.admin, button(f.admin, "close_1"))
	f.transport.reset()

	f.engine.Handle(ctx, &f.alice, text(f.alice, "are you still there?"))

	req.Equal([]string{en(localization.ChatClosedNotice)}, f.transport.textsTo(aliceId))
	req.Empty(f.transport.sentTo(adminId), "stray message must not reach admins")
	req.Empty(f.transport.sentTo(admin2Id))

	sess := f.sessions.Get(aliceId)
	req.Zero(sess.ActiveChatID)
	req.False(sess.AwaitingAdmin)

	// The stray message never entered the audit log either.
	req.Len(f.store.MessagesByChat(1), 1)
}

func TestExplicitStartClosesPriorChat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	f.engine.Handle(ctx, &f.alice, text(f.alice, "lazy question"))
	f.transport.reset()

	f.engine.Handle(ctx, &f.alice, text(f.alice, ButtonStartChat))

	first, err := f.store.GetChatById(ctx, 1)
	req.NoError(err)
	req.Equal(models.ChatClosed, first.Status)

	second, err := f.store.GetChatById(ctx, 2)
	req.NoError(err)
	req.Equal(models.ChatActive, second.Status)
	req.Equal(models.ChatOrder, second.Type)

	sess := f.sessions.Get(aliceId)
	req.EqualValues(2, sess.ActiveChatID)
	req.True(sess.AwaitingAdmin)
	req.Equal(models.ChatOrder, sess.ConversationKind)
	req.Equal([]string{en(localization.DescribeOrder)}, f.transport.textsTo(aliceId))
}

// The lazy per-message path does not close the user's other active chats.
// That asymmetry with the explicit-start flow is inherited source behavior;
// this test pins it so nobody "fixes" one path without deciding about both.
func TestLazyPathKeepsPriorChatActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	f.engine.Handle(ctx, &f.alice, text(f.alice, "first"))

	// Simulate a restart: the session is gone, the chat is not.
	f.sessions.Clear(aliceId, session.FieldActiveChat, session.FieldConversationKind)

	f.engine.Handle(ctx, &f.alice, text(f.alice, "second"))

	active, err := f.store.ListActiveChatsByUser(ctx, aliceId)
	req.NoError(err)
	req.Len(active, 2, "lazy path leaves the prior chat active")
}

func TestAwaitingAdminForwardsFollowUps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	f.engine.Handle(ctx, &f.alice, text(f.alice, ButtonStartChat))
	f.transport.reset()

	f.engine.Handle(ctx, &f.alice, text(f.alice, "two pairs, size 38"))

	notifications := f.transport.sentTo(adminId)
	req.Len(notifications, 1)
	req.Contains(notifications[0].Text, "New order")
	req.Contains(notifications[0].Text, "ID: 100")
	req.Contains(notifications[0].Text, "two pairs, size 38")

	// No second chat was opened for the follow-up.
	_, err := f.store.GetChatById(ctx, 2)
	req.Error(err)

	messages := f.store.MessagesByChat(1)
	req.Len(messages, 1)
	req.Equal("two pairs, size 38", messages[0].Text)
}

func TestUserMediaForwardsToAdminsWithMarker(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	media := models.Media{Kind: models.MediaPhoto, FileID: "photo-9"}
	f.engine.Handle(ctx, &f.alice, Event{
		Kind:    EventMedia,
		From:    Identity{ID: aliceId, Username: "alice"},
		Media:   &media,
		Caption: "this one",
	})

	chat, err := f.store.GetChatById(ctx, 1)
	req.NoError(err)
	req.Equal(models.ChatActive, chat.Status)

	sent := f.transport.sentTo(adminId)
	req.Len(sent, 1)
	req.Equal("media", sent[0].Kind)
	req.Equal(media, *sent[0].Media)
	req.Contains(sent[0].Caption, "ID: 100")
	req.Contains(sent[0].Caption, "this one")
	req.Equal("reply_1", sent[0].Buttons[0].Token)
	req.Equal([]string{en(localization.MediaForwarded)}, f.transport.textsTo(aliceId))
}

func TestBannedUserNeverReachesEngineDirectly(t *testing.T) {
	// Ban filtering happens in middleware; the engine itself treats the
	// record like any user. This pins that the engine does not re-check.
	f := newFixture(t)
	ctx := context.Background()
	req := require.New(t)

	banned := models.User{Id: aliceId, Username: "alice", IsBanned: true}
	f.engine.Handle(ctx, &banned, text(banned, "hi"))

	req.NotEmpty(f.transport.sentTo(adminId))
}
