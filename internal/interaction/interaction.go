// Package interaction routes inbound platform interactions (slash commands,
// button clicks and modal submissions) to authorization checks, form handling
// and outbound notices. It knows nothing about a specific chat platform; the
// adapters in internal/channels translate to and from these types.
package interaction

import (
	"context"

	"github.com/mume-dayo/kato-daikou/internal/notice"
)

// Kind is the type of an inbound interaction.
type Kind int

const (
	KindCommand Kind = iota + 1
	KindComponent
	KindModalSubmit
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindComponent:
		return "component"
	case KindModalSubmit:
		return "modal_submit"
	default:
		return "unknown"
	}
}

// Interaction is one inbound event.
type Interaction struct {
	// ID is the platform interaction id, used for log correlation.
	ID          string
	Kind        Kind
	UserID      string
	UserMention string
	// ChannelID is where the interaction happened. Modal submissions on some
	// platforms carry no channel.
	ChannelID string
	// Name is the command name, the component custom id, or the modal custom id.
	Name string
	// Options holds command parameters rendered as strings.
	Options map[string]string
	// Fields holds modal values keyed by field id.
	Fields map[string]string
}

// Channel is a resolved delivery target.
type Channel struct {
	ID      string
	Mention string
}

// Transport is the outbound delivery capability. Implementations report
// failures as errors and never drop silently.
type Transport interface {
	ResolveChannel(ctx context.Context, channelID string) (Channel, error)
	Send(ctx context.Context, channelID string, embed notice.Embed) error
	SendWithPanel(ctx context.Context, channelID string, embed notice.Embed, panel Panel) error
}

// Responder replies to the interaction that is being handled. Each
// interaction gets its own Responder.
type Responder interface {
	ReplyEphemeral(ctx context.Context, text string) error
	ReplyPublic(ctx context.Context, text string) error
	OpenModal(ctx context.Context, modal Modal) error
}

// ModalField is one text input of a modal.
type ModalField struct {
	ID          string
	Label       string
	Placeholder string
	Required    bool
	MaxLength   int
}

// Modal describes a form to present to the user.
type Modal struct {
	CustomID string
	Title    string
	Fields   []ModalField
}
