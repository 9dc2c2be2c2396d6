package relay

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallbackTokensRoundTrip(t *testing.T) {
	req := require.New(t)

	action, err := ParseAction(ReplyToken(42))
	req.NoError(err)
	req.Equal(Action{Kind: ActionReply, ChatID: 42}, action)

	action, err = ParseAction(CloseToken(7))
	req.NoError(err)
	req.Equal(Action{Kind: ActionClose, ChatID: 7}, action)
}

func TestParseActionRejectsMalformedTokens(t *testing.T) {
	req := require.New(t)

	for _, data := range []string{"", "reply_", "reply_x", "close_-_", "open_5", "reply5"} {
		_, err := ParseAction(data)
		req.Error(err, "token %q must not parse", data)
	}
}

func TestResolveBoundIdentity(t *testing.T) {
	req := require.New(t)

	id, ok := resolveBoundIdentity("New question\nFrom: @alice\nID: 100\nMessage: hi")
	req.True(ok)
	req.EqualValues(100, id)

	id, ok = resolveBoundIdentity("New media message\nFrom: user\nID: 3133731337\nText: photo")
	req.True(ok)
	req.EqualValues(3133731337, id)

	_, ok = resolveBoundIdentity("nothing embedded here")
	req.False(ok)

	_, ok = resolveBoundIdentity("")
	req.False(ok)
}
