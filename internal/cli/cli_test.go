package cli

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mume-dayo/kato-daikou/internal/channels"
	"github.com/mume-dayo/kato-daikou/internal/config"
	"github.com/mume-dayo/kato-daikou/internal/status"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuildBotDiscord(t *testing.T) {
	cfg := &config.Config{
		Bot:     config.BotConfig{Platform: config.PlatformDiscord, CashChannelID: "123", AllowedUsers: []string{"1"}},
		Discord: config.DiscordConfig{Token: "tok"},
	}
	ch, router, err := buildBot(cfg, status.NewLiveness("LTC Bot"), discardLogger())
	if err != nil {
		t.Fatalf("buildBot: %v", err)
	}
	if _, ok := ch.(*channels.DiscordChannel); !ok {
		t.Fatalf("expected discord channel, got %T", ch)
	}
	if router == nil || router.Panels().Len() != 0 {
		t.Fatal("panels must not be registered before ready")
	}
}

func TestBuildBotSlack(t *testing.T) {
	cfg := &config.Config{
		Bot:   config.BotConfig{Platform: config.PlatformSlack, CashChannelID: "CCASH", AllowedUsers: []string{"U1"}},
		Slack: config.SlackConfig{BotToken: "xoxb", AppToken: "xapp"},
	}
	ch, _, err := buildBot(cfg, status.NewLiveness("LTC Bot"), discardLogger())
	if err != nil {
		t.Fatalf("buildBot: %v", err)
	}
	if ch.Name() != config.PlatformSlack {
		t.Fatalf("unexpected channel: %s", ch.Name())
	}
}

func TestBuildBotUnknownPlatform(t *testing.T) {
	cfg := &config.Config{Bot: config.BotConfig{Platform: "irc"}}
	if _, _, err := buildBot(cfg, status.NewLiveness("x"), discardLogger()); err == nil {
		t.Fatal("expected unknown platform error")
	}
}

func TestCommandsListing(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	commandsCmd.Run(cmd, nil)

	for _, want := range []string{"setup_cash_panel", "connect_paypay", "stake_cooperation", "int[1..5]"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("listing missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunFailsFastOnMissingConfig(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv(config.EnvFileVar, "")
	t.Setenv("PLATFORM", "discord")
	t.Setenv("DISCORD_TOKEN", "tok")
	t.Setenv("CASH_CHANNEL_ID", "not-a-number")
	t.Setenv("ALLOWED_USERS", "1")

	var errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(&errOut)
	if err := runBot(cmd, nil); err == nil {
		t.Fatal("expected config error")
	}
	if !strings.Contains(errOut.String(), "Config error") {
		t.Fatalf("expected diagnostic, got %q", errOut.String())
	}
}

func TestNewLoggerLevels(t *testing.T) {
	if !newLogger("debug").Enabled(testContext(t), slog.LevelDebug) {
		t.Fatal("debug level should enable debug")
	}
	if newLogger("bogus").Enabled(testContext(t), slog.LevelDebug) {
		t.Fatal("unknown level should fall back to info")
	}
}
