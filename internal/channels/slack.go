package channels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"github.com/mume-dayo/kato-daikou/internal/config"
	"github.com/mume-dayo/kato-daikou/internal/interaction"
	"github.com/mume-dayo/kato-daikou/internal/notice"
	"github.com/mume-dayo/kato-daikou/internal/status"
)

const slackPanelBlockID = "cash_panel"

var slackChannelIDRe = regexp.MustCompile(`^[CGD][A-Z0-9]{2,}$`)

// SlackChannelID accepts Slack conversation ids such as C024BE91L.
func SlackChannelID(channelID string) error {
	if !slackChannelIDRe.MatchString(channelID) {
		return fmt.Errorf("channel id must look like C024BE91L, got %q", channelID)
	}
	return nil
}

// SlackChannel serves interactions over Slack socket mode. Slash commands
// must be configured in the Slack app manifest; Slack has no API for
// registering them at runtime.
type SlackChannel struct {
	BaseChannel
	config config.SlackConfig
	api    *slack.Client
	client *socketmode.Client
}

// NewSlackChannel creates the channel. Set Router before calling Start.
func NewSlackChannel(cfg config.SlackConfig, live *status.Liveness, logger *slog.Logger) *SlackChannel {
	opts := []slack.Option{slack.OptionAppLevelToken(cfg.AppToken)}
	if base := strings.TrimSpace(cfg.APIBase); base != "" {
		opts = append(opts, slack.OptionAPIURL(strings.TrimRight(base, "/")+"/"))
	}
	api := slack.New(cfg.BotToken, opts...)
	return &SlackChannel{
		BaseChannel: BaseChannel{Liveness: live, Logger: logger.With("channel", "slack")},
		config:      cfg,
		api:         api,
	}
}

func (c *SlackChannel) Name() string { return config.PlatformSlack }

func (c *SlackChannel) Start(ctx context.Context) error {
	c.client = socketmode.New(c.api)
	go c.handleEvents(ctx)
	err := c.client.RunContext(ctx)
	c.Liveness.MarkOffline()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *SlackChannel) Stop() error {
	c.Liveness.MarkOffline()
	return nil
}

func (c *SlackChannel) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.client.Events:
			if !ok {
				return
			}
			c.handleEvent(ctx, evt)
		}
	}
}

func (c *SlackChannel) handleEvent(ctx context.Context, evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeConnected:
		name := ""
		if auth, err := c.api.AuthTestContext(ctx); err == nil {
			name = auth.User
		} else {
			c.Logger.Warn("Slack auth test failed", "error", err)
		}
		c.ready(name)
	case socketmode.EventTypeConnectionError, socketmode.EventTypeDisconnect:
		c.disconnected()
	case socketmode.EventTypeSlashCommand:
		if evt.Request != nil {
			c.client.Ack(*evt.Request)
		}
		cmd, ok := evt.Data.(slack.SlashCommand)
		if !ok {
			return
		}
		in := slashInteraction(cmd)
		c.dispatch(ctx, in, &slackResponder{api: c.api, channelID: cmd.ChannelID, userID: cmd.UserID, triggerID: cmd.TriggerID})
	case socketmode.EventTypeInteractive:
		if evt.Request != nil {
			c.client.Ack(*evt.Request)
		}
		cb, ok := evt.Data.(slack.InteractionCallback)
		if !ok {
			return
		}
		in, rep, ok := c.callbackInteraction(cb)
		if !ok {
			return
		}
		c.dispatch(ctx, in, rep)
	}
}

func (c *SlackChannel) callbackInteraction(cb slack.InteractionCallback) (*interaction.Interaction, *slackResponder, bool) {
	in := &interaction.Interaction{
		UserID:      cb.User.ID,
		UserMention: "<@" + cb.User.ID + ">",
	}
	rep := &slackResponder{api: c.api, userID: cb.User.ID, triggerID: cb.TriggerID}
	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		if len(cb.ActionCallback.BlockActions) == 0 {
			return nil, nil, false
		}
		channelID := strings.TrimSpace(cb.Channel.ID)
		if channelID == "" {
			channelID = strings.TrimSpace(cb.Container.ChannelID)
		}
		in.ID = cb.ActionTs
		in.Kind = interaction.KindComponent
		in.Name = cb.ActionCallback.BlockActions[0].ActionID
		in.ChannelID = channelID
		rep.channelID = channelID
	case slack.InteractionTypeViewSubmission:
		in.ID = cb.View.ID
		in.Kind = interaction.KindModalSubmit
		in.Name = cb.View.CallbackID
		in.Fields = viewValues(cb.View.State)
		// The originating channel rides along in private metadata so the
		// confirmation can be posted ephemerally.
		in.ChannelID = cb.View.PrivateMetadata
		rep.channelID = cb.View.PrivateMetadata
	default:
		return nil, nil, false
	}
	return in, rep, true
}

func (c *SlackChannel) ResolveChannel(ctx context.Context, channelID string) (interaction.Channel, error) {
	ch, err := c.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{ChannelID: channelID})
	if err != nil {
		return interaction.Channel{}, err
	}
	return interaction.Channel{ID: ch.ID, Mention: "<#" + ch.ID + ">"}, nil
}

func (c *SlackChannel) Send(ctx context.Context, channelID string, embed notice.Embed) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionAttachments(slackAttachment(embed)))
	return err
}

func (c *SlackChannel) SendWithPanel(ctx context.Context, channelID string, embed notice.Embed, panel interaction.Panel) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionAttachments(slackAttachment(embed)),
		slack.MsgOptionBlocks(slackPanelBlock(panel)),
	)
	return err
}

type slackResponder struct {
	api       *slack.Client
	channelID string
	userID    string
	triggerID string
}

func (r *slackResponder) ReplyEphemeral(ctx context.Context, text string) error {
	if r.channelID == "" {
		return errors.New("slack: no channel for ephemeral reply")
	}
	_, err := r.api.PostEphemeralContext(ctx, r.channelID, r.userID, slack.MsgOptionText(text, false))
	return err
}

func (r *slackResponder) ReplyPublic(ctx context.Context, text string) error {
	_, _, err := r.api.PostMessageContext(ctx, r.channelID, slack.MsgOptionText(text, false))
	return err
}

func (r *slackResponder) OpenModal(ctx context.Context, m interaction.Modal) error {
	if r.triggerID == "" {
		return errors.New("slack: no trigger id to open a modal")
	}
	_, err := r.api.OpenViewContext(ctx, r.triggerID, slackModal(m, r.channelID))
	return err
}

// ---------------------------------------------------------------------------
// Conversions
// ---------------------------------------------------------------------------

// slashInteraction maps "/name a b c" onto the command's declared options in
// order. The last option takes the rest of the line.
func slashInteraction(cmd slack.SlashCommand) *interaction.Interaction {
	name := strings.TrimPrefix(strings.TrimSpace(cmd.Command), "/")
	in := &interaction.Interaction{
		ID:          cmd.TriggerID,
		Kind:        interaction.KindCommand,
		UserID:      cmd.UserID,
		UserMention: "<@" + cmd.UserID + ">",
		ChannelID:   cmd.ChannelID,
		Name:        name,
		Options:     map[string]string{},
	}
	desc, ok := interaction.LookupCommand(name)
	if !ok || len(desc.Options) == 0 {
		return in
	}
	args := strings.Fields(cmd.Text)
	for idx, o := range desc.Options {
		if idx >= len(args) {
			break
		}
		if idx == len(desc.Options)-1 {
			in.Options[o.Name] = strings.Join(args[idx:], " ")
			break
		}
		in.Options[o.Name] = args[idx]
	}
	return in
}

func viewValues(state *slack.ViewState) map[string]string {
	out := map[string]string{}
	if state == nil {
		return out
	}
	for _, actions := range state.Values {
		for actionID, v := range actions {
			out[actionID] = v.Value
		}
	}
	return out
}

func slackAttachment(e notice.Embed) slack.Attachment {
	att := slack.Attachment{
		Title:  e.Title,
		Text:   e.Description,
		Color:  fmt.Sprintf("#%06x", e.Color),
		Footer: e.Footer,
	}
	for _, f := range e.Fields {
		att.Fields = append(att.Fields, slack.AttachmentField{Title: f.Name, Value: f.Value, Short: f.Inline})
	}
	return att
}

func slackPanelBlock(p interaction.Panel) slack.Block {
	btn := slack.NewButtonBlockElement(p.CustomID, p.CustomID, slack.NewTextBlockObject(slack.PlainTextType, p.Label, false, false))
	switch p.Style {
	case interaction.ButtonSuccess, interaction.ButtonPrimary:
		btn = btn.WithStyle(slack.StylePrimary)
	case interaction.ButtonDanger:
		btn = btn.WithStyle(slack.StyleDanger)
	}
	return slack.NewActionBlock(slackPanelBlockID, btn)
}

func slackModal(m interaction.Modal, channelID string) slack.ModalViewRequest {
	blocks := make([]slack.Block, 0, len(m.Fields))
	for _, f := range m.Fields {
		var placeholder *slack.TextBlockObject
		if f.Placeholder != "" {
			placeholder = slack.NewTextBlockObject(slack.PlainTextType, f.Placeholder, false, false)
		}
		el := slack.NewPlainTextInputBlockElement(placeholder, f.ID)
		if f.MaxLength > 0 {
			el.MaxLength = f.MaxLength
		}
		input := slack.NewInputBlock(f.ID, slack.NewTextBlockObject(slack.PlainTextType, f.Label, false, false), nil, el)
		input.Optional = !f.Required
		blocks = append(blocks, input)
	}
	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      m.CustomID,
		Title:           slack.NewTextBlockObject(slack.PlainTextType, m.Title, false, false),
		Submit:          slack.NewTextBlockObject(slack.PlainTextType, "送信", false, false),
		Close:           slack.NewTextBlockObject(slack.PlainTextType, "キャンセル", false, false),
		Blocks:          slack.Blocks{BlockSet: blocks},
		PrivateMetadata: channelID,
	}
}
