// Package config provides configuration types and loading for the bot.
package config

// Platform names accepted by PLATFORM.
const (
	PlatformDiscord = "discord"
	PlatformSlack   = "slack"
)

// Config is the root configuration struct.
// Top-level groups: Bot (shared), Discord, Slack, Status.
type Config struct {
	Bot     BotConfig
	Discord DiscordConfig
	Slack   SlackConfig
	Status  StatusConfig
}

// ---------------------------------------------------------------------------
// Bot – settings shared by every platform
// ---------------------------------------------------------------------------

// BotConfig holds the settings every transport needs.
type BotConfig struct {
	Platform string `envconfig:"PLATFORM" default:"discord"`
	// CashChannelID is the channel that receives cash-out requests.
	CashChannelID string `envconfig:"CASH_CHANNEL_ID" required:"true"`
	// AllowedUsers is the comma separated allow-list for privileged commands.
	AllowedUsers []string `envconfig:"ALLOWED_USERS" required:"true"`
	LogLevel     string   `envconfig:"LOG_LEVEL" default:"info"`
}

// ---------------------------------------------------------------------------
// Transports
// ---------------------------------------------------------------------------

// DiscordConfig configures the Discord gateway connection.
type DiscordConfig struct {
	Token string `envconfig:"DISCORD_TOKEN"`
	// GuildID scopes command registration to one guild; empty registers globally.
	GuildID string `envconfig:"DISCORD_GUILD_ID"`
}

// SlackConfig configures the Slack socket mode connection.
type SlackConfig struct {
	BotToken string `envconfig:"SLACK_BOT_TOKEN"`
	AppToken string `envconfig:"SLACK_APP_TOKEN"`
	APIBase  string `envconfig:"SLACK_API_BASE"`
}

// ---------------------------------------------------------------------------
// Status – HTTP liveness page
// ---------------------------------------------------------------------------

// StatusConfig configures the HTTP status page.
type StatusConfig struct {
	Addr         string `envconfig:"STATUS_ADDR" default:"0.0.0.0:5000"`
	FallbackName string `envconfig:"BOT_FALLBACK_NAME" default:"LTC Bot"`
}
