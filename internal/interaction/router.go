package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mume-dayo/kato-daikou/internal/notice"
	"github.com/mume-dayo/kato-daikou/internal/policy"
)

// Reply texts.
const (
	MsgDenied         = "❌ 許可されたユーザーのみ使用できます。"
	MsgPanelPosted    = "✅ パネルを設置しました。"
	MsgRequestSent    = "✅ 申請を送信しました。"
	MsgDemoLogSent    = "✅ デモログを %s に送信しました。"
	MsgDemoAchvSent   = "✅ デモ実績を送信しました。"
	MsgUnknownCommand = "❌ 不明なコマンドです。"
	MsgInactivePanel  = "❌ このボタンは現在使用できません。"
)

// ChannelIDValidator checks the syntax of a user supplied channel id.
type ChannelIDValidator func(channelID string) error

// SnowflakeChannelID accepts unsigned decimal ids.
func SnowflakeChannelID(channelID string) error {
	if _, err := strconv.ParseUint(channelID, 10, 64); err != nil {
		return fmt.Errorf("channel id must be numeric, got %q", channelID)
	}
	return nil
}

// Options configures a Router.
type Options struct {
	Gate          *policy.Gate
	Transport     Transport
	CashChannelID string
	// ValidateChannelID defaults to SnowflakeChannelID.
	ValidateChannelID ChannelIDValidator
	Logger            *slog.Logger
}

type commandHandler func(ctx context.Context, in *Interaction) (string, error)

// Router dispatches interactions. Every privileged command passes the gate
// before anything externally observable happens.
type Router struct {
	gate            *policy.Gate
	transport       Transport
	panels          *PanelRegistry
	cashChannelID   string
	validateChannel ChannelIDValidator
	logger          *slog.Logger
	commands        map[string]commandHandler
}

// NewRouter creates a router. Call Ready once the transport is connected.
func NewRouter(opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	validate := opts.ValidateChannelID
	if validate == nil {
		validate = SnowflakeChannelID
	}
	r := &Router{
		gate:            opts.Gate,
		transport:       opts.Transport,
		panels:          NewPanelRegistry(),
		cashChannelID:   opts.CashChannelID,
		validateChannel: validate,
		logger:          logger,
	}
	r.commands = map[string]commandHandler{
		CmdSetupCashPanel:   r.setupCashPanel,
		CmdConnectPayPay:    r.connectPayPay,
		CmdStakeCooperation: r.stakeCooperation,
	}
	return r
}

// Panels exposes the persistent panel registry.
func (r *Router) Panels() *PanelRegistry { return r.panels }

// Ready registers the persistent panels. It runs on every connect; only the
// first call in a process registers anything, and it reports whether it did.
func (r *Router) Ready() bool {
	added := r.panels.Register(CashPanel(), r.openCashForm)
	if added {
		r.logger.Info("Persistent panel registered", "custom_id", CashPanelID)
	} else {
		r.logger.Debug("Persistent panel already registered", "custom_id", CashPanelID)
	}
	return added
}

// Dispatch handles one interaction. Failures are turned into a private reply
// to the invoker; the returned error is only set when that reply itself could
// not be sent.
func (r *Router) Dispatch(ctx context.Context, in *Interaction, reply Responder) error {
	log := r.logger.With("interaction_id", in.ID, "kind", in.Kind.String(), "name", in.Name, "user_id", in.UserID)

	var (
		text string
		err  error
	)
	switch in.Kind {
	case KindCommand:
		h, ok := r.commands[in.Name]
		if !ok {
			log.Warn("Unknown command")
			return reply.ReplyEphemeral(ctx, MsgUnknownCommand)
		}
		if d := r.gate.Evaluate(in.UserID); !d.Allow {
			log.Info("Command denied", "reason", d.Reason)
			return reply.ReplyEphemeral(ctx, MsgDenied)
		}
		if err = validateOptions(in); err == nil {
			text, err = h(ctx, in)
		}
	case KindComponent:
		_, h, ok := r.panels.Lookup(in.Name)
		if !ok {
			log.Warn("Component not registered")
			return reply.ReplyEphemeral(ctx, MsgInactivePanel)
		}
		// Panel handlers answer through reply themselves (a modal is a reply).
		if err = h(ctx, in, reply); err == nil {
			return nil
		}
	case KindModalSubmit:
		if !IsCashForm(in.Name) {
			log.Warn("Unknown modal")
			return nil
		}
		text, err = r.submitCashForm(ctx, in)
	default:
		log.Warn("Unsupported interaction kind")
		return nil
	}

	if err != nil {
		log.Warn("Interaction failed", "error", err)
		return reply.ReplyEphemeral(ctx, failureMessage(err))
	}
	return reply.ReplyEphemeral(ctx, text)
}

// validateOptions rejects missing or out-of-domain parameters before any
// handler sees them.
func validateOptions(in *Interaction) error {
	desc, ok := LookupCommand(in.Name)
	if !ok {
		return &ValidationError{Field: "command", Reason: "unknown"}
	}
	for _, o := range desc.Options {
		raw := strings.TrimSpace(in.Options[o.Name])
		if raw == "" {
			if o.Required {
				return &ValidationError{Field: o.Name, Reason: "required"}
			}
			continue
		}
		if o.Type != OptionInteger {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return &ValidationError{Field: o.Name, Reason: fmt.Sprintf("must be an integer, got %q", raw)}
		}
		if o.MinValue != nil && n < *o.MinValue {
			return &ValidationError{Field: o.Name, Reason: fmt.Sprintf("must be at least %d", *o.MinValue)}
		}
		if o.MaxValue != nil && n > *o.MaxValue {
			return &ValidationError{Field: o.Name, Reason: fmt.Sprintf("must be at most %d", *o.MaxValue)}
		}
	}
	return nil
}

func option(in *Interaction, name string) string {
	return strings.TrimSpace(in.Options[name])
}

func (r *Router) setupCashPanel(ctx context.Context, in *Interaction) (string, error) {
	if err := r.transport.SendWithPanel(ctx, in.ChannelID, notice.PanelIntro(), CashPanel()); err != nil {
		return "", &DeliveryError{ChannelID: in.ChannelID, Err: err}
	}
	r.logger.Info("Cash panel posted", "channel_id", in.ChannelID, "user_id", in.UserID)
	return MsgPanelPosted, nil
}

func (r *Router) connectPayPay(ctx context.Context, in *Interaction) (string, error) {
	channelID := option(in, "channel_id")
	if err := r.validateChannel(channelID); err != nil {
		return "", &ValidationError{Field: "channel_id", Reason: err.Error()}
	}
	ch, err := r.transport.ResolveChannel(ctx, channelID)
	if err != nil {
		return "", &ResolutionError{ChannelID: channelID, Err: err}
	}
	embed := notice.DemoLog(option(in, "user"), option(in, "amount"))
	if err := r.transport.Send(ctx, ch.ID, embed); err != nil {
		return "", &DeliveryError{ChannelID: ch.ID, Err: err}
	}
	return fmt.Sprintf(MsgDemoLogSent, ch.Mention), nil
}

func (r *Router) stakeCooperation(ctx context.Context, in *Interaction) (string, error) {
	// validateOptions has already checked both integers.
	rating, _ := strconv.Atoi(option(in, "rating"))
	count, _ := strconv.Atoi(option(in, "count"))
	embed := notice.DemoAchievement(option(in, "user"), option(in, "title"), rating, count)
	if err := r.transport.Send(ctx, in.ChannelID, embed); err != nil {
		return "", &DeliveryError{ChannelID: in.ChannelID, Err: err}
	}
	return MsgDemoAchvSent, nil
}

// openCashForm is the cash panel handler: every activation presents a new form.
func (r *Router) openCashForm(ctx context.Context, in *Interaction, reply Responder) error {
	form := NewCashForm()
	r.logger.Debug("Presenting cash form", "form_id", form.Instance(), "user_id", in.UserID)
	return reply.OpenModal(ctx, form.Modal())
}

func (r *Router) submitCashForm(ctx context.Context, in *Interaction) (string, error) {
	form, err := ParseCashForm(in.Name)
	if err != nil {
		return "", err
	}
	sub, err := form.Submit(in.UserMention, in.Fields, r.cashChannelID)
	if err != nil {
		return "", err
	}
	ch, err := r.transport.ResolveChannel(ctx, sub.ChannelID)
	if err != nil {
		return "", &ResolutionError{ChannelID: sub.ChannelID, Err: err}
	}
	if err := r.transport.Send(ctx, ch.ID, sub.Embed); err != nil {
		return "", &DeliveryError{ChannelID: ch.ID, Err: err}
	}
	r.logger.Info("Cash request delivered", "form_id", form.Instance(), "channel_id", ch.ID, "user_id", in.UserID)
	return MsgRequestSent, nil
}
