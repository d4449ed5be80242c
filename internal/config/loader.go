package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvFileVar names an explicit env file to load before the working directory's .env.
const EnvFileVar = "KATO_ENV_FILE"

// LoadEnvFiles loads variables from the explicit env file (if set) and ./.env.
// Existing process env vars are never overridden.
func LoadEnvFiles() error {
	candidates := make([]string, 0, 2)
	if explicit := strings.TrimSpace(os.Getenv(EnvFileVar)); explicit != "" {
		candidates = append(candidates, explicit)
	}
	candidates = append(candidates, ".env")
	for _, p := range candidates {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the configuration from env files and the process environment,
// then validates it. Any error is fatal for the caller.
func Load() (*Config, error) {
	if err := LoadEnvFiles(); err != nil {
		return nil, err
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", &cfg.Bot); err != nil {
		return nil, fmt.Errorf("bot config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Discord); err != nil {
		return nil, fmt.Errorf("discord config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Slack); err != nil {
		return nil, fmt.Errorf("slack config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Status); err != nil {
		return nil, fmt.Errorf("status config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Bot.Platform = strings.ToLower(strings.TrimSpace(c.Bot.Platform))
	c.Bot.CashChannelID = strings.TrimSpace(c.Bot.CashChannelID)
	users := make([]string, 0, len(c.Bot.AllowedUsers))
	for _, u := range c.Bot.AllowedUsers {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	c.Bot.AllowedUsers = users
	c.Discord.Token = strings.TrimSpace(c.Discord.Token)
	c.Slack.BotToken = strings.TrimSpace(c.Slack.BotToken)
	c.Slack.AppToken = strings.TrimSpace(c.Slack.AppToken)
}

// Validate checks that everything the selected platform needs is present and
// well formed.
func (c *Config) Validate() error {
	if c.Bot.CashChannelID == "" {
		return errors.New("CASH_CHANNEL_ID is empty")
	}
	if len(c.Bot.AllowedUsers) == 0 {
		return errors.New("ALLOWED_USERS is empty")
	}
	switch c.Bot.Platform {
	case PlatformDiscord:
		if c.Discord.Token == "" {
			return errors.New("DISCORD_TOKEN is required for platform discord")
		}
		if _, err := strconv.ParseUint(c.Bot.CashChannelID, 10, 64); err != nil {
			return fmt.Errorf("CASH_CHANNEL_ID must be an integer snowflake, got %q", c.Bot.CashChannelID)
		}
		for _, u := range c.Bot.AllowedUsers {
			if _, err := strconv.ParseUint(u, 10, 64); err != nil {
				return fmt.Errorf("ALLOWED_USERS entry must be an integer user id, got %q", u)
			}
		}
	case PlatformSlack:
		if c.Slack.BotToken == "" {
			return errors.New("SLACK_BOT_TOKEN is required for platform slack")
		}
		if c.Slack.AppToken == "" {
			return errors.New("SLACK_APP_TOKEN is required for platform slack")
		}
	default:
		return fmt.Errorf("unknown PLATFORM %q (want %s or %s)", c.Bot.Platform, PlatformDiscord, PlatformSlack)
	}
	return nil
}
