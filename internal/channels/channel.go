// Package channels adapts chat platforms to the interaction router.
package channels

import (
	"context"
	"log/slog"

	"github.com/mume-dayo/kato-daikou/internal/interaction"
	"github.com/mume-dayo/kato-daikou/internal/status"
)

// Channel defines the interface for chat platforms (Discord, Slack).
type Channel interface {
	interaction.Transport
	// Name returns the channel name (e.g. "discord").
	Name() string
	// Start connects and blocks until ctx is cancelled.
	Start(ctx context.Context) error
	// Stop closes the connection.
	Stop() error
	// SetRouter attaches the router that handles inbound interactions.
	SetRouter(r *interaction.Router)
}

// BaseChannel provides common functionality for channels.
type BaseChannel struct {
	Router   *interaction.Router
	Liveness *status.Liveness
	Logger   *slog.Logger
}

// SetRouter attaches the router. It must be called before Start.
func (b *BaseChannel) SetRouter(r *interaction.Router) { b.Router = r }

// ready runs the shared startup transition: re-register persistent panels
// and flip the liveness flag. Safe to call on every reconnect.
func (b *BaseChannel) ready(displayName string) {
	b.Router.Ready()
	b.Liveness.MarkOnline(displayName)
	b.Logger.Info("Bot ready", "name", displayName)
}

func (b *BaseChannel) disconnected() {
	b.Liveness.MarkOffline()
	b.Logger.Warn("Bot disconnected")
}

// dispatch hands one interaction to the router and logs reply failures.
func (b *BaseChannel) dispatch(ctx context.Context, in *interaction.Interaction, reply interaction.Responder) {
	if err := b.Router.Dispatch(ctx, in, reply); err != nil {
		b.Logger.Error("Interaction reply failed", "interaction_id", in.ID, "name", in.Name, "error", err)
	}
}
