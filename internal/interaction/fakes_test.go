package interaction

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mume-dayo/kato-daikou/internal/notice"
	"github.com/mume-dayo/kato-daikou/internal/policy"
)

type sentMessage struct {
	ChannelID string
	Embed     notice.Embed
	Panel     *Panel
}

type fakeTransport struct {
	mu         sync.Mutex
	channels   map[string]Channel
	sendErr    error
	resolved   []string
	sent       []sentMessage
	resolveErr error
}

func newFakeTransport(ids ...string) *fakeTransport {
	t := &fakeTransport{channels: map[string]Channel{}}
	for _, id := range ids {
		t.channels[id] = Channel{ID: id, Mention: "<#" + id + ">"}
	}
	return t
}

func (t *fakeTransport) ResolveChannel(_ context.Context, id string) (Channel, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resolved = append(t.resolved, id)
	if t.resolveErr != nil {
		return Channel{}, t.resolveErr
	}
	ch, ok := t.channels[id]
	if !ok {
		return Channel{}, errors.New("Unknown Channel")
	}
	return ch, nil
}

func (t *fakeTransport) Send(_ context.Context, id string, e notice.Embed) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, sentMessage{ChannelID: id, Embed: e})
	return nil
}

func (t *fakeTransport) SendWithPanel(_ context.Context, id string, e notice.Embed, p Panel) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sendErr != nil {
		return t.sendErr
	}
	t.sent = append(t.sent, sentMessage{ChannelID: id, Embed: e, Panel: &p})
	return nil
}

func (t *fakeTransport) deliveries() []sentMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]sentMessage(nil), t.sent...)
}

type fakeResponder struct {
	ephemeral []string
	public    []string
	modals    []Modal
}

func (r *fakeResponder) ReplyEphemeral(_ context.Context, text string) error {
	r.ephemeral = append(r.ephemeral, text)
	return nil
}

func (r *fakeResponder) ReplyPublic(_ context.Context, text string) error {
	r.public = append(r.public, text)
	return nil
}

func (r *fakeResponder) OpenModal(_ context.Context, m Modal) error {
	r.modals = append(r.modals, m)
	return nil
}

func (r *fakeResponder) replies() int {
	return len(r.ephemeral) + len(r.public) + len(r.modals)
}

const (
	adminID     = "1376293325635850374"
	strangerID  = "999"
	cashChannel = "555000111222333444"
	hereChannel = "100"
)

func newTestRouter(tr *fakeTransport) *Router {
	return NewRouter(Options{
		Gate:          policy.NewGate([]string{adminID}),
		Transport:     tr,
		CashChannelID: cashChannel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func command(user, name string, opts map[string]string) *Interaction {
	return &Interaction{
		ID:          "i-1",
		Kind:        KindCommand,
		UserID:      user,
		UserMention: "<@" + user + ">",
		ChannelID:   hereChannel,
		Name:        name,
		Options:     opts,
	}
}
