package channels

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mume-dayo/kato-daikou/internal/config"
	"github.com/mume-dayo/kato-daikou/internal/interaction"
	"github.com/mume-dayo/kato-daikou/internal/notice"
	"github.com/mume-dayo/kato-daikou/internal/status"
)

// DiscordChannel connects to the Discord gateway and serves interactions.
type DiscordChannel struct {
	BaseChannel
	config  config.DiscordConfig
	session *discordgo.Session
	ctx     context.Context
}

// NewDiscordChannel creates the channel. Set Router before calling Start.
func NewDiscordChannel(cfg config.DiscordConfig, live *status.Liveness, logger *slog.Logger) (*DiscordChannel, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds
	return &DiscordChannel{
		BaseChannel: BaseChannel{Liveness: live, Logger: logger.With("channel", "discord")},
		config:      cfg,
		session:     s,
		ctx:         context.Background(),
	}, nil
}

func (c *DiscordChannel) Name() string { return config.PlatformDiscord }

func (c *DiscordChannel) Start(ctx context.Context) error {
	c.ctx = ctx
	c.session.AddHandler(c.onReady)
	c.session.AddHandler(c.onDisconnect)
	c.session.AddHandler(c.onInteraction)
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("discord open: %w", err)
	}
	<-ctx.Done()
	return c.Stop()
}

func (c *DiscordChannel) Stop() error {
	c.Liveness.MarkOffline()
	return c.session.Close()
}

func (c *DiscordChannel) onReady(s *discordgo.Session, r *discordgo.Ready) {
	cmds := applicationCommands(interaction.Commands())
	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, c.config.GuildID, cmds); err != nil {
		c.Logger.Error("Command sync failed", "error", err)
	} else {
		c.Logger.Info("Commands synced", "count", len(cmds), "guild_id", c.config.GuildID)
	}
	c.ready(r.User.Username)
}

func (c *DiscordChannel) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	c.disconnected()
}

func (c *DiscordChannel) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	in, ok := toInteraction(i)
	if !ok {
		return
	}
	c.dispatch(c.ctx, in, &discordResponder{session: s, interaction: i.Interaction})
}

// ResolveChannel fetches the channel, from the state cache when possible.
func (c *DiscordChannel) ResolveChannel(ctx context.Context, channelID string) (interaction.Channel, error) {
	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return interaction.Channel{}, err
	}
	return interaction.Channel{ID: ch.ID, Mention: ch.Mention()}, nil
}

func (c *DiscordChannel) Send(ctx context.Context, channelID string, embed notice.Embed) error {
	_, err := c.session.ChannelMessageSendEmbed(channelID, discordEmbed(embed), discordgo.WithContext(ctx))
	return err
}

func (c *DiscordChannel) SendWithPanel(ctx context.Context, channelID string, embed notice.Embed, panel interaction.Panel) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{discordEmbed(embed)},
		Components: panelComponents(panel),
	}, discordgo.WithContext(ctx))
	return err
}

type discordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

func (r *discordResponder) respond(ctx context.Context, resp *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, resp, discordgo.WithContext(ctx))
}

func (r *discordResponder) ReplyEphemeral(ctx context.Context, text string) error {
	return r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text, Flags: discordgo.MessageFlagsEphemeral},
	})
}

func (r *discordResponder) ReplyPublic(ctx context.Context, text string) error {
	return r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	})
}

func (r *discordResponder) OpenModal(ctx context.Context, m interaction.Modal) error {
	return r.respond(ctx, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modalData(m),
	})
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

func toInteraction(i *discordgo.InteractionCreate) (*interaction.Interaction, bool) {
	in := &interaction.Interaction{ID: i.ID, ChannelID: i.ChannelID}
	var u *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		u = i.Member.User
	} else if i.User != nil {
		u = i.User
	}
	if u == nil {
		return nil, false
	}
	in.UserID = u.ID
	in.UserMention = u.Mention()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		in.Kind = interaction.KindCommand
		in.Name = data.Name
		in.Options = commandOptions(data.Options)
	case discordgo.InteractionMessageComponent:
		in.Kind = interaction.KindComponent
		in.Name = i.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		in.Kind = interaction.KindModalSubmit
		in.Name = data.CustomID
		in.Fields = modalValues(data.Components)
	default:
		return nil, false
	}
	return in, true
}

func commandOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) map[string]string {
	out := make(map[string]string, len(opts))
	for _, o := range opts {
		switch o.Type {
		case discordgo.ApplicationCommandOptionInteger:
			out[o.Name] = strconv.FormatInt(o.IntValue(), 10)
		case discordgo.ApplicationCommandOptionString:
			out[o.Name] = o.StringValue()
		default:
			out[o.Name] = strings.TrimSpace(fmt.Sprint(o.Value))
		}
	}
	return out
}

func modalValues(components []discordgo.MessageComponent) map[string]string {
	out := map[string]string{}
	for _, c := range components {
		row, ok := c.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, rc := range row.Components {
			if ti, ok := rc.(*discordgo.TextInput); ok {
				out[ti.CustomID] = ti.Value
			}
		}
	}
	return out
}

func applicationCommands(descs []interaction.CommandDescriptor) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(descs))
	for _, d := range descs {
		cmd := &discordgo.ApplicationCommand{Name: d.Name, Description: d.Description}
		for _, o := range d.Options {
			opt := &discordgo.ApplicationCommandOption{
				Name:        o.Name,
				Description: o.Description,
				Required:    o.Required,
				Type:        discordgo.ApplicationCommandOptionString,
			}
			if o.Type == interaction.OptionInteger {
				opt.Type = discordgo.ApplicationCommandOptionInteger
				if o.MinValue != nil {
					minV := float64(*o.MinValue)
					opt.MinValue = &minV
				}
				if o.MaxValue != nil {
					opt.MaxValue = float64(*o.MaxValue)
				}
			}
			cmd.Options = append(cmd.Options, opt)
		}
		out = append(out, cmd)
	}
	return out
}

func discordEmbed(e notice.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       e.Title,
		Description: e.Description,
		Color:       e.Color,
	}
	for _, f := range e.Fields {
		out.Fields = append(out.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	if e.Footer != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	return out
}

func buttonStyle(s interaction.ButtonStyle) discordgo.ButtonStyle {
	switch s {
	case interaction.ButtonSecondary:
		return discordgo.SecondaryButton
	case interaction.ButtonSuccess:
		return discordgo.SuccessButton
	case interaction.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.PrimaryButton
	}
}

func panelComponents(p interaction.Panel) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{CustomID: p.CustomID, Label: p.Label, Style: buttonStyle(p.Style)},
			},
		},
	}
}

func modalData(m interaction.Modal) *discordgo.InteractionResponseData {
	rows := make([]discordgo.MessageComponent, 0, len(m.Fields))
	for _, f := range m.Fields {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    f.ID,
					Label:       f.Label,
					Style:       discordgo.TextInputShort,
					Placeholder: f.Placeholder,
					Required:    f.Required,
					MaxLength:   f.MaxLength,
				},
			},
		})
	}
	return &discordgo.InteractionResponseData{
		CustomID:   m.CustomID,
		Title:      m.Title,
		Components: rows,
	}
}
