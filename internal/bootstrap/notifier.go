package bootstrap

import (
	"log/slog"

	"github.com/osse101/BrandishEvents_Go/internal/config"
	"github.com/osse101/BrandishEvents_Go/internal/notify"
)

// BuildNotifier always logs notifications and also sends them to Discord
// when a bot token and channel are configured.
func BuildNotifier(cfg *config.Config, resolver notify.ExternalIDResolver) notify.Notifier {
	sinks := notify.Multi{notify.LogNotifier{}}
	if !cfg.DiscordEnabled() {
		return sinks
	}
	discord, err := notify.NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannelID, resolver)
	if err != nil {
		slog.Warn(LogMsgDiscordFailed, "error", err)
		return sinks
	}
	slog.Info(LogMsgDiscordEnabled, "channel", cfg.DiscordChannelID)
	return append(sinks, discord)
}
