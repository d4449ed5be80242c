package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mume-dayo/kato-daikou/internal/channels"
	"github.com/mume-dayo/kato-daikou/internal/config"
	"github.com/mume-dayo/kato-daikou/internal/interaction"
	"github.com/mume-dayo/kato-daikou/internal/policy"
	"github.com/mume-dayo/kato-daikou/internal/status"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the chat platform and serve the cash-out panel",
	RunE:  runBot,
}

var runSignalNotify = signal.NotifyContext

func runBot(cmd *cobra.Command, args []string) error {
	printHeader(cmd, "🟢 Bot")

	// 1. Load config; any problem is fatal before we connect.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Config error: %v\n", err)
		return err
	}
	logger := newLogger(cfg.Bot.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := runSignalNotify(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Wire transport, gate and router.
	live := status.NewLiveness(cfg.Status.FallbackName)
	ch, _, err := buildBot(cfg, live, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Startup error: %v\n", err)
		return err
	}
	logger.Info("Bot configured",
		"platform", ch.Name(),
		"allow_listed", len(cfg.Bot.AllowedUsers),
		"cash_channel_id", cfg.Bot.CashChannelID,
	)

	// 3. Status page runs independently of the dispatcher.
	statusErr := make(chan error, 1)
	go func() {
		statusErr <- status.Serve(ctx, cfg.Status.Addr, live)
	}()

	// 4. Connect and block.
	runErr := make(chan error, 1)
	go func() {
		runErr <- ch.Start(ctx)
	}()

	select {
	case err := <-statusErr:
		if err != nil {
			logger.Error("Status server failed", "error", err)
			stop()
			<-runErr
			return err
		}
		return <-runErr
	case err := <-runErr:
		stop()
		<-statusErr
		if err != nil {
			logger.Error("Channel stopped", "error", err)
		}
		return err
	}
}

// buildBot creates the platform channel and the router bound to it.
func buildBot(cfg *config.Config, live *status.Liveness, logger *slog.Logger) (channels.Channel, *interaction.Router, error) {
	var (
		ch       channels.Channel
		validate interaction.ChannelIDValidator
	)
	switch cfg.Bot.Platform {
	case config.PlatformDiscord:
		dc, err := channels.NewDiscordChannel(cfg.Discord, live, logger)
		if err != nil {
			return nil, nil, err
		}
		ch, validate = dc, interaction.SnowflakeChannelID
	case config.PlatformSlack:
		ch, validate = channels.NewSlackChannel(cfg.Slack, live, logger), channels.SlackChannelID
	default:
		return nil, nil, fmt.Errorf("unknown platform %q", cfg.Bot.Platform)
	}
	router := interaction.NewRouter(interaction.Options{
		Gate:              policy.NewGate(cfg.Bot.AllowedUsers),
		Transport:         ch,
		CashChannelID:     cfg.Bot.CashChannelID,
		ValidateChannelID: validate,
		Logger:            logger,
	})
	ch.SetRouter(router)
	return ch, router, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
