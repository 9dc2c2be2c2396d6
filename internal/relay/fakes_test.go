package relay

import (
	"context"
	"sync"

	"supportbot/internal/models"
)

type sentItem struct {
	Kind    string
	To      int64
	Text    string
	Caption string
	Media   *models.Media
	Buttons []Button
	Rows    [][]string
}

// fakeTransport records every outbound call and can be told to fail sends to
// specific recipients. Attempts are recorded before failing so tests can
// assert completeness.
type fakeTransport struct {
	mu   sync.Mutex
	sent []sentItem
	fail map[int64]error
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{fail: make(map[int64]error)}
}

func (t *fakeTransport) SendText(_ context.Context, to int64, text string) error {
	return t.record(sentItem{Kind: "text", To: to, Text: text})
}

func (t *fakeTransport) SendMedia(_ context.Context, to int64, media models.Media, caption string) error {
	return t.record(sentItem{Kind: "media", To: to, Media: &media, Caption: caption})
}

func (t *fakeTransport) SendTextButtons(_ context.Context, to int64, text string, buttons []Button) error {
	return t.record(sentItem{Kind: "text", To: to, Text: text, Buttons: buttons})
}

func (t *fakeTransport) SendMediaButtons(_ context.Context, to int64, media models.Media, caption string, buttons []Button) error {
	return t.record(sentItem{Kind: "media", To: to, Media: &media, Caption: caption, Buttons: buttons})
}

func (t *fakeTransport) SendMenu(_ context.Context, to int64, text string, rows [][]string) error {
	return t.record(sentItem{Kind: "menu", To: to, Text: text, Rows: rows})
}

func (t *fakeTransport) AnswerCallback(_ context.Context, callbackId string, text string) error {
	return t.record(sentItem{Kind: "callback", Text: text})
}

func (t *fakeTransport) record(item sentItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sent = append(t.sent, item)

	return t.fail[item.To]
}

func (t *fakeTransport) failFor(to int64, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.fail[to] = err
}

func (t *fakeTransport) sentTo(to int64) []sentItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	var items []sentItem

	for _, item := range t.sent {
		if item.To == to {
			items = append(items, item)
		}
	}

	return items
}

func (t *fakeTransport) textsTo(to int64) []string {
	var texts []string

	for _, item := range t.sentTo(to) {
		if item.Kind == "text" {
			texts = append(texts, item.Text)
		}
	}

	return texts
}

func (t *fakeTransport) all() []sentItem {
	t.mu.Lock()
	defer t.mu.Unlock()

	return append([]sentItem(nil), t.sent...)
}

func (t *fakeTransport) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sent = nil
}
